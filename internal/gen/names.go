package gen

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultIncludeGuard is used when the schema comes from standard input.
	DefaultIncludeGuard = "ASN1_HEADER_H"
	// DefaultHeaderName is used when the output goes to standard output.
	DefaultHeaderName = "asn1"
)

// IncludeGuard derives the header guard macro from the schema path:
// libfreerdp/core/credssp.asn1 becomes LIBFREERDP_CORE_CREDSSP_ASN1_H.
func IncludeGuard(inputPath string) string {
	if inputPath == "" || inputPath == "-" {
		return DefaultIncludeGuard
	}

	clean := filepath.ToSlash(filepath.Clean(inputPath))

	var b strings.Builder
	for _, r := range strings.ToUpper(clean) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String() + "_H"
}

// HeaderName derives the header base name from the output path:
// libfreerdp/core/tscredentials.c becomes tscredentials.
func HeaderName(outputPath string) string {
	if outputPath == "" || outputPath == "-" {
		return DefaultHeaderName
	}

	base := filepath.Base(outputPath)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
