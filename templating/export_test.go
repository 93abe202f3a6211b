package templating

// FindCycleForTest exposes findCycle.
var FindCycleForTest = findCycle

// NormalizeNewlinesForTest exposes normalizeNewlines.
var NormalizeNewlinesForTest = normalizeNewlines
