package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ber-generator/internal/diagnostic"
)

func TestParseOptionsFile(t *testing.T) {
	of, err := ParseOptionsFile([]byte(`
prefix: nla_
octetStringLen:
  unicode: "wcslen(item->{fieldName}) * 2"
fieldOptions:
  - target: TSCspDataDetail.cardName
    option: charInMemorySerializeToUnicode
`))
	require.NoError(t, err)
	require.NotNil(t, of.Prefix)
	assert.Equal(t, "nla_", *of.Prefix)
	assert.Equal(t, "wcslen(item->{fieldName}) * 2", of.OctetStringLen["unicode"])
	require.Len(t, of.FieldOptions, 1)
	assert.Equal(t, "TSCspDataDetail.cardName", of.FieldOptions[0].Target)
}

func TestParseOptionsFileEmpty(t *testing.T) {
	of, err := ParseOptionsFile(nil)
	require.NoError(t, err)
	assert.Nil(t, of.Prefix)
	assert.Empty(t, of.FieldOptions)
}

func TestParseOptionsFileUnknownKey(t *testing.T) {
	_, err := ParseOptionsFile([]byte("prefx: nla_\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefx")
}

func TestWithOptions(t *testing.T) {
	base := parse(t, optionsBase+"%options {\nprefix old_\n}\n")

	prefix := "nla_"
	of := &OptionsFile{
		Prefix:         &prefix,
		OctetStringLen: map[string]string{"charInMemorySerializeToUnicode": "utf8len(item->{fieldName})"},
		FieldOptions:   []FieldOptionSpec{{Target: "TSCspDataDetail.cardName", Option: "charInMemorySerializeToUnicode"}},
	}

	merged, err := base.WithOptions(of)
	require.NoError(t, err)

	assert.Equal(t, "nla_", merged.Options.Prefix)
	assert.True(t, merged.Record("TSCspDataDetail").Field("cardName").HasOption(OptionCharToUnicode))
	assert.Equal(t, "utf8len(item->{fieldName})", merged.Options.OctetStringLen[RepresentationTranscoded])

	// The original schema is unchanged.
	assert.Equal(t, "old_", base.Options.Prefix)
	assert.False(t, base.Record("TSCspDataDetail").Field("cardName").HasOption(OptionCharToUnicode))
	assert.Equal(t, DefaultOptions().OctetStringLen[RepresentationTranscoded],
		base.Options.OctetStringLen[RepresentationTranscoded])
}

func TestWithOptionsUnknownTarget(t *testing.T) {
	base := parse(t, optionsBase)

	_, err := base.WithOptions(&OptionsFile{
		FieldOptions: []FieldOptionSpec{{Target: "TSCspDataDetail.readerName", Option: "unicode"}},
	})
	require.Error(t, err)
	assert.Equal(t, diagnostic.CodeUnknownField, diagnostic.CodeOf(err))
	assert.Contains(t, err.Error(), "options file:")
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefix: x_\n"), 0o644))

	of, err := LoadOptionsFile(path)
	require.NoError(t, err)
	require.NotNil(t, of.Prefix)
	assert.Equal(t, "x_", *of.Prefix)

	_, err = LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadExampleOptionsFile(t *testing.T) {
	of, err := LoadOptionsFile("../../examples/credssp.options.yaml")
	require.NoError(t, err)
	require.Len(t, of.FieldOptions, 1)
	assert.Equal(t, "unicode", of.FieldOptions[0].Option)
}
