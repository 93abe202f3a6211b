package templating_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/workflowgen/templating"
)

const deployHeader = `# Arguments:
# event_name: release  # normally triggered by a release
#   trigger: deploy-1.0
# event_cond:github.event.action
name: Deploy
`

func TestExtractArguments_collects_header(t *testing.T) {
	t.Parallel()

	got, err := templating.ExtractArguments(
		"deploy.yml", deployHeader, nil,
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]templating.Definition{
			{Name: "event_name", Value: "release"},
			{Name: "trigger", Value: "deploy-1.0"},
			{Name: "event_cond", Value: "github.event.action"},
		},
		got,
	)
}

func TestExtractArguments_no_header(t *testing.T) {
	t.Parallel()

	got, err := templating.ExtractArguments(
		"build.yml", "# trigger: x\nname: Build\n", nil,
	)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractArguments_header_later_in_file(t *testing.T) {
	t.Parallel()

	text := "name: Build\n  #  Arguments:  \n  # os: linux\n"

	got, err := templating.ExtractArguments("build.yml", text, nil)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]templating.Definition{{Name: "os", Value: "linux"}},
		got,
	)
}

func TestExtractArguments_stops_at_malformed_line(t *testing.T) {
	t.Parallel()

	text := "# Arguments:\n" +
		"# good: yes\n" +
		"# bad: two words\n" +
		"# later: ignored\n"

	got, err := templating.ExtractArguments("build.yml", text, nil)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]templating.Definition{{Name: "good", Value: "yes"}},
		got,
	)
}

func TestExtractArguments_repeated_header_continues_block(t *testing.T) {
	t.Parallel()

	text := "# Arguments:\n# Arguments:\n# a: b\n"

	got, err := templating.ExtractArguments("build.yml", text, nil)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]templating.Definition{{Name: "a", Value: "b"}},
		got,
	)

	out, err := templating.ExpandString(
		"build.yml", text+"x: <<a>>", nil,
	)

	require.NoError(t, err)
	assert.Equal(t, text+"x: b", out)
}

func TestExtractArguments_collides_with_known(t *testing.T) {
	t.Parallel()

	known, err := templating.FromMap(map[string]string{"os": "linux"})
	require.NoError(t, err)

	_, err = templating.ExtractArguments(
		"build.yml", "# Arguments:\n# os: windows\n", known,
	)

	require.Error(t, err)

	var de *templating.DuplicateDefinitionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "build.yml", de.Template)
	assert.Equal(t, "os", de.Name)
	assert.ErrorIs(t, err, templating.ErrDuplicateDefinition)
}

func TestExtractArguments_declared_twice(t *testing.T) {
	t.Parallel()

	_, err := templating.ExtractArguments(
		"build.yml", "# Arguments:\n# a: 1\n# a: 2\n", nil,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, templating.ErrDuplicateDefinition)
	assert.Contains(t, err.Error(), "build.yml")
}
