package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sum returns the SHA256 hex digest of data.
func Sum(data []byte) string {
	ha := sha256.Sum256(data)

	return hex.EncodeToString(ha[:])
}

// Matches reports whether the file at path holds exactly
// data, comparing SHA256 digests. A missing file never
// matches.
func Matches(path string, data []byte) (bool, error) {
	const errCtx = "comparing digest"

	onDisk, err := os.ReadFile(path) //nolint:gosec // output path from layout
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Sum(onDisk) == Sum(data), nil
}
