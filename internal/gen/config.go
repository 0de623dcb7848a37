package gen

import (
	"fmt"
	"log/slog"
	"strings"
)

//go:generate go tool stringer -type=FileKind -trimprefix=FileKind -output=filekind_string.go

// FileKind distinguishes the two generated artifacts.
type FileKind int

const (
	FileKindHeader FileKind = iota
	FileKindImpl
)

// OutputMode selects which artifacts are generated.
type OutputMode string

const (
	ModeHeaders OutputMode = "headers"
	ModeImpls   OutputMode = "impls"
	ModeBoth    OutputMode = "both"
)

// Modes lists every accepted output mode.
var Modes = []OutputMode{ModeHeaders, ModeImpls, ModeBoth}

// ParseMode validates an output mode name.
func ParseMode(s string) (OutputMode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}

	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}

	return "", fmt.Errorf("unknown output kind %q (want one of %s)", s, strings.Join(names, ", "))
}

// Includes reports whether the mode produces artifacts of kind k.
func (m OutputMode) Includes(k FileKind) bool {
	switch m {
	case ModeHeaders:
		return k == FileKindHeader
	case ModeImpls:
		return k == FileKindImpl
	default:
		return true
	}
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Mode selects the generated artifacts.
	Mode OutputMode
	// InputName is the schema path the include guard derives from. Empty
	// means standard input.
	InputName string
	// HeaderName is the base name of the declarations file, without extension.
	HeaderName string
	// LogTagPrefix is prepended to HeaderName in the TAG definition.
	LogTagPrefix string
	// Command is the command line quoted in the banner.
	Command string
	// HeaderIncludes are the system includes of the declarations.
	HeaderIncludes []string
	// ImplIncludes are the system includes of the implementations, emitted
	// before the generated header.
	ImplIncludes []string
	// PrefixOverride replaces the schema prefix when non-empty.
	PrefixOverride string
	// Logger receives debug traces. Nil disables logging.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Mode:           ModeBoth,
		HeaderName:     DefaultHeaderName,
		LogTagPrefix:   "core.",
		Command:        "ber-generator",
		HeaderIncludes: []string{"winpr/stream.h"},
		ImplIncludes:   []string{"winpr/string.h", "freerdp/crypto/ber.h"},
	}
}
