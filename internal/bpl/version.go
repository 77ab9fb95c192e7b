package bpl

// Version constants for the emitted IR and the translator.
const (
	// IRVersion is the IR schema version, part of every program hash.
	IRVersion = "1"

	// TranslatorVersion is the bct translator version.
	TranslatorVersion = "0.1.0"
)
