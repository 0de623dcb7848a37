package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ber-generator/internal/ber"
)

func encodeArray(t *testing.T, c *Codec, items []*Instance) []byte {
	t.Helper()

	w := ber.NewWriter()
	n, err := c.WriteArray(w, items)
	require.NoError(t, err)

	size, err := c.SizeofArray(items)
	require.NoError(t, err)
	assert.Equal(t, size, n)
	assert.Equal(t, size, w.Len())

	return w.Bytes()
}

func TestArrayRoundTrip(t *testing.T) {
	rs := exampleSchema(t)
	c := New(DefaultConfig())
	elem := rs.Record("TSRemoteGuardPackageCred")

	for _, n := range []int{0, 1, 4} {
		items := []*Instance{}
		for i := range n {
			items = append(items, packageCred(t, rs, string(rune('a'+i))))
		}

		data := encodeArray(t, c, items)

		r := ber.NewReader(data)
		got, err := c.ReadArray(r, elem)
		require.NoError(t, err)
		assert.Equal(t, items, got, "n=%d", n)
		assert.Equal(t, 0, r.Remaining())
	}
}

func TestArrayEmptyEncoding(t *testing.T) {
	c := New(DefaultConfig())

	data := encodeArray(t, c, nil)
	assert.Equal(t, []byte{0x30, 0x00}, data)

	content, err := c.SizeofArrayContent(nil)
	require.NoError(t, err)
	assert.Zero(t, content)
}

func TestArrayContentIsPlainSum(t *testing.T) {
	rs := exampleSchema(t)
	c := New(DefaultConfig())

	items := []*Instance{packageCred(t, rs, "NTLM"), packageCred(t, rs, "Kerberos")}

	want := 0
	for _, it := range items {
		n, err := c.Sizeof(it)
		require.NoError(t, err)

		want += n
	}

	got, err := c.SizeofArrayContent(items)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	outer, err := c.SizeofArray(items)
	require.NoError(t, err)
	assert.Equal(t, ber.SizeofSequence(want), outer)

	ctx, err := c.SizeofArrayContextual(items)
	require.NoError(t, err)
	assert.Equal(t, ber.SizeofContextualTag(outer)+outer, ctx)
}

func TestArrayCorruptedElementReleasesAccumulated(t *testing.T) {
	rs := exampleSchema(t)
	items := []*Instance{packageCred(t, rs, "pkg"), packageCred(t, rs, "pkg"), packageCred(t, rs, "pkg")}

	data := encodeArray(t, New(DefaultConfig()), items)

	// Each element is 15 bytes behind a two byte array header; the second
	// element's packageName OCTET STRING tag follows two two-byte headers.
	require.Len(t, data, 47)
	require.Equal(t, ber.TagOctetString, data[21])
	data[21] = 0x05

	rec := &recorder{}
	got, err := New(rec.config()).ReadArray(ber.NewReader(data), rs.Record("TSRemoteGuardPackageCred"))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "element 1")
	assert.Equal(t, []string{
		"TSRemoteGuardPackageCred.packageName", "TSRemoteGuardPackageCred.credBuffer",
	}, rec.events)
}

func TestArrayFieldFailureReleasesEarlierFields(t *testing.T) {
	rs := exampleSchema(t)
	c := New(DefaultConfig())

	guard := mk(t, rs, "TSRemoteGuardCreds",
		"logonCred", packageCred(t, rs, "pkg"),
		"supplementalCreds", []*Instance{packageCred(t, rs, "pkg"), packageCred(t, rs, "pkg")})

	data, err := c.Encode(guard)
	require.NoError(t, err)

	// Sequence header 2, logonCred 17, array context header 2, array header
	// 2, first element 15, then the second element's nested headers.
	off := 2 + 17 + 2 + 2 + 15 + 2 + 2
	require.Equal(t, ber.TagOctetString, data[off])
	data[off] = 0x05

	rec := &recorder{}
	_, err = New(rec.config()).Decode(rs.Record("TSRemoteGuardCreds"), data)
	require.Error(t, err)

	assert.Equal(t, []string{
		"TSRemoteGuardPackageCred.packageName", "TSRemoteGuardPackageCred.credBuffer",
		"TSRemoteGuardPackageCred.packageName", "TSRemoteGuardPackageCred.credBuffer",
		"TSRemoteGuardCreds.logonCred",
	}, rec.events)
}

func TestArrayWriteFailure(t *testing.T) {
	rs := exampleSchema(t)
	c := New(DefaultConfig())
	items := []*Instance{packageCred(t, rs, "a"), packageCred(t, rs, "b")}

	size, err := c.SizeofArray(items)
	require.NoError(t, err)

	_, err = c.WriteArray(ber.NewLimitedWriter(size-1), items)
	require.ErrorIs(t, err, ber.ErrShortBuffer)

	_, err = c.WriteArrayContextual(ber.NewLimitedWriter(size), 1, items)
	require.ErrorIs(t, err, ber.ErrShortBuffer)
}
