package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ber-generator/internal/diagnostic"
)

const optionsBase = `
TSCspDataDetail ::= SEQUENCE {
    keySpec  [0] INTEGER,
    cardName [1] OCTET STRING OPTIONAL
}
`

func TestOptionsBlockErrors(t *testing.T) {
	tests := []struct {
		name        string
		block       string
		code        string
		text        string
		suggestions []string
	}{
		{
			name:        "unknown keyword",
			block:       "prefx nla_",
			code:        diagnostic.CodeUnknownOption,
			text:        `"prefx"`,
			suggestions: []string{"prefix"},
		},
		{
			name:  "prefix without argument",
			block: "prefix",
			code:  diagnostic.CodeMalformedOption,
		},
		{
			name:  "prefix not an identifier",
			block: "prefix nla-",
			code:  diagnostic.CodeMalformedOption,
		},
		{
			name:  "target without dot",
			block: "fieldOption TSCspDataDetail unicode",
			code:  diagnostic.CodeMalformedOption,
		},
		{
			name:        "unknown record",
			block:       "fieldOption TSCspDataDetial.cardName unicode",
			code:        diagnostic.CodeUnknownRecord,
			text:        "TSCspDataDetial",
			suggestions: []string{"TSCspDataDetail"},
		},
		{
			name:        "unknown field",
			block:       "fieldOption TSCspDataDetail.cardNam unicode",
			code:        diagnostic.CodeUnknownField,
			text:        "TSCspDataDetail has no field cardNam",
			suggestions: []string{"cardName"},
		},
		{
			name:        "unknown field option",
			block:       "fieldOption TSCspDataDetail.cardName unicod",
			code:        diagnostic.CodeUnknownFieldOption,
			text:        `"unicod"`,
			suggestions: []string{"unicode"},
		},
		{
			name:  "unknown representation",
			block: "octetStringLen wide wcslen(item->{fieldName})",
			code:  diagnostic.CodeMalformedOption,
		},
		{
			name:  "length without placeholder",
			block: "octetStringLen unicode wcslen(x)",
			code:  diagnostic.CodeMalformedOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := optionsBase + "%options {\n" + tt.block + "\n}\n"
			_, err := ParseString(src, DefaultParseConfig())
			require.Error(t, err)
			assert.Equal(t, tt.code, diagnostic.CodeOf(err), err.Error())

			var de *diagnostic.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, 7, de.Line)

			if tt.text != "" {
				assert.Contains(t, err.Error(), tt.text)
			}

			if tt.suggestions != nil {
				assert.Equal(t, tt.suggestions, de.Suggestions)
			}
		})
	}
}

func TestFieldOptionBeforeRecordFails(t *testing.T) {
	src := "%options {\nfieldOption A.x unicode\n}\nA ::= SEQUENCE {\n x [0] OCTET STRING\n}\n"

	_, err := ParseString(src, DefaultParseConfig())
	require.Error(t, err)
	assert.Equal(t, diagnostic.CodeUnknownRecord, diagnostic.CodeOf(err))
}

func TestOctetStringLenOverride(t *testing.T) {
	s := parse(t, optionsBase+"%options {\n  octetStringLen unicode wcslen(item->{fieldName}) * sizeof(WCHAR)\n}\n")

	assert.Equal(t, "wcslen(item->{fieldName}) * sizeof(WCHAR)", s.Options.OctetStringLen[RepresentationWide])
	assert.Equal(t, DefaultOptions().OctetStringLen[RepresentationBytes], s.Options.OctetStringLen[RepresentationBytes])
}
