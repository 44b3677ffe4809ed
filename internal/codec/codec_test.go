package codec

import (
	"encoding/base64"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/model"
)

func fixture() []model.Item {
	return []model.Item{
		{ID: model.NewID(), Text: "milk", Quantity: 1},
		{ID: model.NewID(), Text: "eggs", Quantity: 2},
		{ID: model.NewID(), Text: "olive oil", IsPurchased: true, Quantity: 3},
	}
}

func TestEncodeEmptyList(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]model.Item{}))
}

func TestEncodeIsURLSafeASCII(t *testing.T) {
	token := Encode(fixture())
	require.NotEmpty(t, token)
	for _, r := range token {
		assert.Less(t, r, rune(128))
		assert.NotContains(t, "+/=", string(r))
	}
}

func TestWireFormat(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "share_token", []byte(Encode(fixture())))
}

func TestRoundTrip(t *testing.T) {
	in := fixture()
	out := Decode(Encode(in))
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Text, out[i].Text, "order must survive the round trip")
		assert.Equal(t, in[i].IsPurchased, out[i].IsPurchased)
		assert.Equal(t, in[i].Quantity, out[i].Quantity)
	}
}

func TestDecodeRegeneratesIdentifiers(t *testing.T) {
	in := fixture()
	token := Encode(in)
	a := Decode(token)
	b := Decode(token)
	require.Len(t, a, len(in))
	for i := range a {
		// Ids are session-local; two decodes of the same token must not share them.
		assert.NotEqual(t, a[i].ID, b[i].ID)
		assert.NotEmpty(t, a[i].ID)
	}
}

func TestDecodeAcceptsPaddedTokens(t *testing.T) {
	in := fixture()
	unpadded := Encode(in)
	padded := unpadded
	for len(padded)%4 != 0 {
		padded += "="
	}
	assert.Len(t, Decode(padded), len(in))
}

func TestDecodeUnicodeText(t *testing.T) {
	in := []model.Item{{ID: "x", Text: "café au lait ☕", Quantity: 1}}
	out := Decode(Encode(in))
	require.Len(t, out, 1)
	assert.Equal(t, "café au lait ☕", out[0].Text)
}

func TestDecodeIsTotal(t *testing.T) {
	b64 := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }
	cases := map[string]string{
		"empty":            "",
		"not base64":       "not-base64!!",
		"truncated base64": Encode(fixture())[:7],
		"non-JSON payload": b64("hello world"),
		"JSON non-array":   b64(`{"a":1}`),
		"array of scalars": b64(`[1,2,3]`),
		"tuple too short":  b64(`[[0]]`),
		"tuple too long":   b64(`[[0,"x",1,9]]`),
		"flag not number":  b64(`[["no","x",1]]`),
		"text not string":  b64(`[[0,42,1]]`),
		"qty not number":   b64(`[[0,"x","many"]]`),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Empty(t, Decode(token))
			})
		})
	}
}

func TestDecodeQuantityDefaults(t *testing.T) {
	b64 := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	// Absent quantity decodes to 1.
	out := Decode(b64(`[[0,"milk"]]`))
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Quantity)

	// Zero and negative quantities clamp to 1.
	out = Decode(b64(`[[0,"milk",0],[1,"eggs",-4]]`))
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Quantity)
	assert.Equal(t, 1, out[1].Quantity)
}
