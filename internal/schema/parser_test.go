package schema

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ber-generator/internal/diagnostic"
)

func parse(t *testing.T, src string) *Schema {
	t.Helper()

	s, err := ParseString(src, DefaultParseConfig())
	require.NoError(t, err)

	return s
}

func parseErr(t *testing.T, src string) error {
	t.Helper()

	_, err := ParseString(src, DefaultParseConfig())
	require.Error(t, err)

	return err
}

func TestParseSimpleRecord(t *testing.T) {
	s := parse(t, `
TSCredentials ::= SEQUENCE {
    credType    [0] INTEGER,
    credentials [1] OCTET STRING
}
`)

	require.Len(t, s.Records, 1)
	rec := s.Records[0]
	assert.Equal(t, "TSCredentials", rec.Name)
	assert.Equal(t, 2, rec.Line)
	require.Len(t, rec.Fields, 2)

	assert.Equal(t, "credType", rec.Fields[0].Name)
	assert.Equal(t, 0, rec.Fields[0].Index)
	assert.Equal(t, TypeInteger, rec.Fields[0].Type)
	assert.False(t, rec.Fields[0].Optional)

	assert.Equal(t, "credentials", rec.Fields[1].Name)
	assert.Equal(t, 1, rec.Fields[1].Index)
	assert.Equal(t, TypeOctetString, rec.Fields[1].Type)
	assert.Equal(t, 4, rec.Fields[1].Line)

	assert.Same(t, rec, s.Record("TSCredentials"))
	assert.Equal(t, DefaultOptions(), s.Options)
}

func TestParseOptionalSequenceOfAndReference(t *testing.T) {
	s := parse(t, `
Outer ::= SEQUENCE {
    inner    [0] Inner,
    items    [3] SEQUENCE OF Inner OPTIONAL,
    count    [5] INTEGER OPTIONAL
}
Inner ::= SEQUENCE {
    value [0] INTEGER
}
`)

	assert.Equal(t, []string{"Outer", "Inner"}, s.RecordNames())

	outer := s.Record("Outer")
	require.NotNil(t, outer)

	inner := outer.Field("inner")
	require.NotNil(t, inner)
	assert.Equal(t, "Inner", inner.Type)
	assert.Empty(t, inner.ElementType)

	items := outer.Field("items")
	require.NotNil(t, items)
	assert.Equal(t, TypeSequenceOf, items.Type)
	assert.Equal(t, "Inner", items.ElementType)
	assert.Equal(t, 3, items.Index)
	assert.True(t, items.Optional)

	count := outer.Field("count")
	require.NotNil(t, count)
	assert.True(t, count.Optional)
	assert.Equal(t, 5, count.Index)
}

func TestParseCommentsAndModuleLines(t *testing.T) {
	s := parse(t, `# leading comment
CredSSP DEFINITIONS ::= BEGIN
   # indented comment
A ::= SEQUENCE {
    # comment inside a record
    x [0] INTEGER

}
%options {
    # comment inside options
    prefix p_
}
END
`)

	require.Len(t, s.Records, 1)
	assert.Len(t, s.Records[0].Fields, 1)
	assert.Equal(t, "p_", s.Options.Prefix)
	assert.Empty(t, s.Warnings, "module wrappers are expected input")
}

func TestParseWarnsOnSkippedText(t *testing.T) {
	s := parse(t, `IMPORTS Foo FROM Bar;
A ::= SEQUENCE {
 x [0] INTEGER
}
`)

	require.Len(t, s.Records, 1)
	require.Len(t, s.Warnings, 1)

	w := s.Warnings[0]
	assert.Equal(t, diagnostic.DiagnosticWarning, w.Severity)
	assert.Equal(t, diagnostic.CodeSkippedLine, w.Code)
	assert.Equal(t, 1, w.Line)
	assert.Contains(t, w.Message, "IMPORTS Foo FROM Bar;")

	assert.Equal(t, s.Warnings, s.Clone().Warnings)
}

func TestParseCompactPunctuation(t *testing.T) {
	s := parse(t, "A ::= SEQUENCE{\n  x [0] INTEGER OPTIONAL,\n  y [1] OCTET STRING,\n}\n")

	rec := s.Record("A")
	require.NotNil(t, rec)
	require.Len(t, rec.Fields, 2)
	assert.True(t, rec.Fields[0].Optional)
	assert.Equal(t, TypeOctetString, rec.Fields[1].Type)
}

func TestParseOptionsBlockThenMoreRecords(t *testing.T) {
	s := parse(t, `
A ::= SEQUENCE {
    name [0] OCTET STRING
}
%options {
    prefix nla_
    fieldOption A.name unicode
    fieldOption A.name unicode
}
B ::= SEQUENCE {
    a [0] A
}
`)

	assert.Equal(t, "nla_", s.Options.Prefix)
	assert.Equal(t, []FieldOption{OptionUnicode}, s.Record("A").Field("name").Options)
	require.NotNil(t, s.Record("B"))
}

func TestParseIndexNotContiguous(t *testing.T) {
	s := parse(t, "A ::= SEQUENCE {\n x [4] INTEGER\n y [2] INTEGER\n}\n")

	rec := s.Record("A")
	assert.Equal(t, 4, rec.Fields[0].Index)
	assert.Equal(t, 2, rec.Fields[1].Index)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		line int
		text string
	}{
		{
			name: "choice is not a flat record",
			src:  "A ::= CHOICE {\n}\n",
			code: diagnostic.CodeUnsupportedDefinition,
			line: 1,
			text: "CHOICE",
		},
		{
			name: "top-level sequence of",
			src:  "A ::= SEQUENCE OF B\n",
			code: diagnostic.CodeUnsupportedDefinition,
			line: 1,
		},
		{
			name: "missing brace",
			src:  "A ::= SEQUENCE\n",
			code: diagnostic.CodeMalformedHeader,
			line: 1,
		},
		{
			name: "assignment glued to the name",
			src:  "A ::= SEQUENCE {\n}\nFoo::= SEQUENCE {\n x [0] INTEGER\n}\n",
			code: diagnostic.CodeMalformedHeader,
			line: 3,
			text: "Foo::=",
		},
		{
			name: "assignment glued to the keyword",
			src:  "Foo ::=SEQUENCE {\n x [0] INTEGER\n}\n",
			code: diagnostic.CodeMalformedHeader,
			line: 1,
		},
		{
			name: "field line outside a record",
			src:  "x [0] INTEGER\n",
			code: diagnostic.CodeMalformedHeader,
			line: 1,
		},
		{
			name: "stray closing brace",
			src:  "A ::= SEQUENCE {\n}\n}\n",
			code: diagnostic.CodeMalformedHeader,
			line: 3,
		},
		{
			name: "bad record name",
			src:  "1A ::= SEQUENCE {\n}\n",
			code: diagnostic.CodeMalformedHeader,
			line: 1,
		},
		{
			name: "missing index brackets",
			src:  "A ::= SEQUENCE {\n x 0 INTEGER\n}\n",
			code: diagnostic.CodeMalformedField,
			line: 2,
			text: "bracketed index",
		},
		{
			name: "non numeric index",
			src:  "A ::= SEQUENCE {\n x [a] INTEGER\n}\n",
			code: diagnostic.CodeMalformedField,
			line: 2,
		},
		{
			name: "index out of range",
			src:  "A ::= SEQUENCE {\n x [31] INTEGER\n}\n",
			code: diagnostic.CodeIndexOutOfRange,
			line: 2,
		},
		{
			name: "missing type",
			src:  "A ::= SEQUENCE {\n x [0] OPTIONAL\n}\n",
			code: diagnostic.CodeMalformedField,
			line: 2,
		},
		{
			name: "too few tokens",
			src:  "A ::= SEQUENCE {\n x [0]\n}\n",
			code: diagnostic.CodeMalformedField,
			line: 2,
		},
		{
			name: "inline nested sequence",
			src:  "A ::= SEQUENCE {\n x [0] SEQUENCE {\n}\n",
			code: diagnostic.CodeUnsupportedDefinition,
			line: 2,
		},
		{
			name: "sequence of without element",
			src:  "A ::= SEQUENCE {\n x [0] SEQUENCE OF\n}\n",
			code: diagnostic.CodeUnsupportedDefinition,
			line: 2,
		},
		{
			name: "duplicate field",
			src:  "A ::= SEQUENCE {\n x [0] INTEGER\n x [1] INTEGER\n}\n",
			code: diagnostic.CodeDuplicateField,
			line: 3,
		},
		{
			name: "duplicate index",
			src:  "A ::= SEQUENCE {\n x [0] INTEGER\n y [0] INTEGER\n}\n",
			code: diagnostic.CodeDuplicateIndex,
			line: 3,
			text: `"x"`,
		},
		{
			name: "duplicate record",
			src:  "A ::= SEQUENCE {\n}\nA ::= SEQUENCE {\n}\n",
			code: diagnostic.CodeDuplicateRecord,
			line: 3,
		},
		{
			name: "unterminated record",
			src:  "A ::= SEQUENCE {\n x [0] INTEGER\n",
			code: diagnostic.CodeUnterminatedBlock,
			line: 1,
		},
		{
			name: "unterminated options",
			src:  "%options {\n prefix a_\n",
			code: diagnostic.CodeUnterminatedBlock,
			line: 1,
		},
		{
			name: "malformed options opener",
			src:  "%options\n",
			code: diagnostic.CodeMalformedHeader,
			line: 1,
		},
		{
			name: "junk after closing brace",
			src:  "A ::= SEQUENCE {\n} trailing\n",
			code: diagnostic.CodeMalformedField,
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.src)
			assert.Equal(t, tt.code, diagnostic.CodeOf(err), err.Error())

			var de *diagnostic.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.line, de.Line)

			if tt.text != "" {
				assert.Contains(t, err.Error(), tt.text)
			}
		})
	}
}

func TestParseErrorNamesRecordAndField(t *testing.T) {
	err := parseErr(t, "TSRequest ::= SEQUENCE {\n version [0] INTEGER\n version [1] INTEGER\n}\n")
	assert.True(t, strings.HasPrefix(err.Error(), "line 3: TSRequest.version:"), err.Error())
}

func TestParseExampleSchema(t *testing.T) {
	f, err := os.Open("../../examples/credssp.asn1")
	require.NoError(t, err)
	defer f.Close()

	s, err := Parse(f, DefaultParseConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TSCredentials",
		"TSPasswordCreds",
		"TSCspDataDetail",
		"TSSmartCardCreds",
		"TSRemoteGuardPackageCred",
		"TSRemoteGuardCreds",
	}, s.RecordNames())
	assert.Equal(t, "nla_", s.Options.Prefix)
	assert.True(t, s.Record("TSSmartCardCreds").Field("pin").HasOption(OptionCharToUnicode))
	assert.False(t, s.Record("TSPasswordCreds").Field("password").HasOption(OptionCharToUnicode))
	assert.Empty(t, s.Warnings)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"A", "::=", "SEQUENCE", "{"}, tokenize("A ::= SEQUENCE{"))
	assert.Equal(t, []string{"x", "[0]", "INTEGER", "OPTIONAL", ","}, tokenize("x\t[0] INTEGER OPTIONAL,"))
	assert.Equal(t, []string{"}", ","}, tokenize("},"))
	assert.Empty(t, tokenize("   "))
}
