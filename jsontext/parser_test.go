package jsontext_test

import (
	"math"
	"testing"

	"github.com/fwojciec/jsonextract"
	"github.com/fwojciec/jsonextract/jsontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses every kind", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(`{"n":null,"b":true,"x":1.5,"s":"hi","a":[1,"two"],"o":{}}`)

		require.NoError(t, err)
		require.Equal(t, jsonextract.Object, v.Kind())
		kinds := make([]jsonextract.Kind, 0, 6)
		for _, m := range v.Members() {
			kinds = append(kinds, m.Value.Kind())
		}
		assert.Equal(t, []jsonextract.Kind{
			jsonextract.Null, jsonextract.Bool, jsonextract.Number,
			jsonextract.String, jsonextract.Array, jsonextract.Object,
		}, kinds)
	})

	t.Run("keeps member order from the source", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(`{"zeta":1,"alpha":2,"mid":3}`)

		require.NoError(t, err)
		keys := make([]string, 0, 3)
		for _, m := range v.Members() {
			keys = append(keys, m.Key)
		}
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
	})

	t.Run("last duplicate wins in first position", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(`{"a":1,"b":2,"a":3}`)

		require.NoError(t, err)
		require.Len(t, v.Members(), 2)
		assert.Equal(t, "a", v.Members()[0].Key)
		assert.Equal(t, "3", v.Members()[0].Value.String())
	})

	t.Run("unescapes strings", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(`"line\nbreak é"`)

		require.NoError(t, err)
		assert.Equal(t, "line\nbreak é", v.String())
	})

	t.Run("accepts scalar documents", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(" 42 \n")

		require.NoError(t, err)
		assert.Equal(t, "42", v.String())
	})

	t.Run("overflows out-of-range numbers to infinity", func(t *testing.T) {
		t.Parallel()

		v, err := jsontext.NewParser().Parse(`[1e400,-1e400,1e-400]`)

		require.NoError(t, err)
		elems := v.Elements()
		require.Len(t, elems, 3)
		assert.True(t, math.IsInf(elems[0].Float(), 1))
		assert.Equal(t, "Infinity", elems[0].String())
		assert.Equal(t, "-Infinity", elems[1].String())
		assert.Equal(t, "0", elems[2].String())
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{
			"not json",
			`{"a":}`,
			`{"a":1,}`,
			`[1 2]`,
			`{'a':1}`,
		} {
			_, err := jsontext.NewParser().Parse(text)

			assert.Equal(t, jsonextract.EPARSE, jsonextract.ErrorCode(err), text)
			assert.NotEmpty(t, jsonextract.ErrorMessage(err), text)
		}
	})

	t.Run("rejects empty and truncated input", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"", "   ", `{"a":[1,2`} {
			_, err := jsontext.NewParser().Parse(text)

			assert.Equal(t, jsonextract.EPARSE, jsonextract.ErrorCode(err), text)
			assert.Equal(t, "unexpected end of JSON input", jsonextract.ErrorMessage(err), text)
		}
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()

		_, err := jsontext.NewParser().Parse(`{"a":1} {"b":2}`)

		assert.Equal(t, jsonextract.EPARSE, jsonextract.ErrorCode(err))
		assert.Contains(t, jsonextract.ErrorMessage(err), "after JSON value")
	})
}
