package internal

// Grammar and layout constants shared by the parser and the stringifier
const (
	TabWidth  = 4  // columns a tab advances
	MaxIndent = 10 // longest indent unit, in spaces or runes
)
