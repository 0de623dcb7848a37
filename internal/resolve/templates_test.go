package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fragments struct {
	members []Member
	length  string
	write   string
	read    string
	cleanup string
}

func render(s *Schema, record, field string) fragments {
	f := s.Record(record).Field(field)
	c := NewContext(s.Naming(), f)

	return fragments{
		members: f.Template.Members(c),
		length:  f.Template.Length(c),
		write:   f.Template.Write(c),
		read:    f.Template.Read(c),
		cleanup: f.Template.Cleanup(c),
	}
}

func TestTemplatesExample(t *testing.T) {
	rs := loadExample(t)

	tests := []struct {
		name   string
		record string
		field  string
		want   fragments
	}{
		{
			name:   "scalar",
			record: "TSCredentials",
			field:  "credType",
			want: fragments{
				members: []Member{{Type: "UINT32", Name: "credType"}},
				length:  "ber_sizeof_contextual_integer(item->credType)",
				write:   "ber_write_contextual_integer(s, 0, item->credType)",
				read:    "ber_read_integer(&fieldStream, &item->credType)",
			},
		},
		{
			name:   "bytes blob",
			record: "TSCredentials",
			field:  "credentials",
			want: fragments{
				members: []Member{{Type: "size_t", Name: "credentialsLen"}, {Type: "BYTE*", Name: "credentials"}},
				length:  "ber_sizeof_contextual_octet_string(item->credentialsLen)",
				write:   "ber_write_contextual_octet_string(s, 1, item->credentials, item->credentialsLen)",
				read:    "ber_read_octet_string(&fieldStream, &item->credentials, &item->credentialsLen)",
				cleanup: "free(item->credentials);",
			},
		},
		{
			name:   "transcoded blob",
			record: "TSSmartCardCreds",
			field:  "pin",
			want: fragments{
				members: []Member{{Type: "char*", Name: "pin"}},
				length:  "ber_sizeof_contextual_octet_string(strlen(item->pin) * 2)",
				write:   "ber_write_contextual_char_to_unicode_octet_string(s, 0, item->pin)",
				read:    "ber_read_char_from_unicode_octet_string(&fieldStream, &item->pin)",
				cleanup: "free(item->pin);",
			},
		},
		{
			name:   "nested",
			record: "TSSmartCardCreds",
			field:  "cspData",
			want: fragments{
				members: []Member{{Type: "TSCspDataDetail_t*", Name: "cspData"}},
				length:  "ber_sizeof_contextual_nla_TSCspDataDetail(item->cspData)",
				write:   "ber_write_contextual_nla_TSCspDataDetail(s, 1, item->cspData)",
				read:    "ber_read_nla_TSCspDataDetail(&fieldStream, &item->cspData)",
				cleanup: "nla_TSCspDataDetail_free(&item->cspData);",
			},
		},
		{
			name:   "array",
			record: "TSRemoteGuardCreds",
			field:  "supplementalCreds",
			want: fragments{
				members: []Member{
					{Type: "size_t", Name: "supplementalCredsItems"},
					{Type: "TSRemoteGuardPackageCred_t*", Name: "supplementalCreds"},
				},
				length: "ber_sizeof_contextual_nla_TSRemoteGuardPackageCred_array(" +
					"item->supplementalCreds, item->supplementalCredsItems)",
				write: "ber_write_contextual_nla_TSRemoteGuardPackageCred_array(" +
					"s, 1, item->supplementalCreds, item->supplementalCredsItems)",
				read: "ber_read_nla_TSRemoteGuardPackageCred_array(" +
					"&fieldStream, &item->supplementalCreds, &item->supplementalCredsItems)",
				cleanup: "nla_TSRemoteGuardPackageCred_array_free(" +
					"&item->supplementalCreds, item->supplementalCredsItems);",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(rs, tt.record, tt.field))
		})
	}
}

func TestTemplatesWideAndCustomLength(t *testing.T) {
	rs := resolveString(t, `
Name ::= SEQUENCE {
    value [2] OCTET STRING
}

%options {
    fieldOption Name.value unicode
    octetStringLen unicode _wcslen(item->{fieldName}) * sizeof(WCHAR)
}
`)

	got := render(rs, "Name", "value")
	assert.Equal(t, []Member{{Type: "WCHAR*", Name: "value"}}, got.members)
	assert.Equal(t, "ber_sizeof_contextual_octet_string(_wcslen(item->value) * sizeof(WCHAR))", got.length)
	assert.Equal(t, "ber_write_contextual_unicode_octet_string(s, 2, item->value)", got.write)
	assert.Equal(t, "ber_read_unicode_octet_string(&fieldStream, &item->value)", got.read)
}

func TestTemplateCustomStream(t *testing.T) {
	rs := loadExample(t)
	f := rs.Record("TSCredentials").Field("credType")

	c := NewContext(rs.Naming(), f)
	c.Stream = "s"

	require.Equal(t, "ber_read_integer(s, &item->credType)", f.Template.Read(c))
}

func TestNaming(t *testing.T) {
	n := Naming{Prefix: "nla_"}

	assert.Equal(t, "TSCredentials_t", n.Type("TSCredentials"))
	assert.Equal(t, "TSCredentials_s", n.Tag("TSCredentials"))
	assert.Equal(t, "ber_sizeof_nla_TSCredentials_content", n.SizeofContent("TSCredentials"))
	assert.Equal(t, "ber_sizeof_nla_TSCredentials", n.Sizeof("TSCredentials"))
	assert.Equal(t, "ber_sizeof_contextual_nla_TSCredentials", n.SizeofContextual("TSCredentials"))
	assert.Equal(t, "nla_TSCredentials_free", n.Free("TSCredentials"))
	assert.Equal(t, "ber_write_nla_TSCredentials", n.Write("TSCredentials"))
	assert.Equal(t, "ber_write_contextual_nla_TSCredentials", n.WriteContextual("TSCredentials"))
	assert.Equal(t, "ber_read_nla_TSCredentials", n.Read("TSCredentials"))
	assert.Equal(t, "ber_sizeof_nla_X_array_content", n.ArraySizeofContent("X"))
	assert.Equal(t, "ber_sizeof_nla_X_array", n.ArraySizeof("X"))
	assert.Equal(t, "ber_sizeof_contextual_nla_X_array", n.ArraySizeofContextual("X"))
	assert.Equal(t, "nla_X_array_free", n.ArrayFree("X"))
	assert.Equal(t, "ber_write_nla_X_array", n.ArrayWrite("X"))
	assert.Equal(t, "ber_write_contextual_nla_X_array", n.ArrayWriteContextual("X"))
	assert.Equal(t, "ber_read_nla_X_array", n.ArrayRead("X"))
}
