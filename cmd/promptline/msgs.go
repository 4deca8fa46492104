package main

// User-facing fallback messages. Claude Code shows whatever lands on
// stdout, so failures still print a status line shaped explanation.
// Keeping the strings stable helps tests.
const (
	msgFailedInvalidConfig = "Failed to build status line due to invalid config"
	msgFailedEmptyInput    = "Failed to build status line due to empty input"
	msgFailedInvalidJSON   = "Failed to build status line due to invalid json"
)
