package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Stored or rendered
	SymbolFail     = "✗" // Failed
	SymbolPending  = "○" // Not started
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Done
	SymbolSkipped  = "⊘" // Nothing to do
	SymbolWarning  = "!" // Recoverable problem
)
