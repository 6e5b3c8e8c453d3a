package ui

// Status glyphs for phase lines.
const (
	SymbolProgress = "◐"
	SymbolComplete = "●"
	SymbolFail     = "✗"
	SymbolSkipped  = "⊘"
)
