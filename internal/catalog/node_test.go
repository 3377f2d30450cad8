package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
)

func mustNode(t *testing.T, raw string) catalog.Node {
	t.Helper()
	n, err := catalog.ParseNode([]byte(raw))
	require.NoError(t, err)
	return n
}

func TestParseNode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := catalog.ParseNode([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding JSON")
}

func TestNode_Get(t *testing.T) {
	t.Parallel()

	n := mustNode(t, `{"a":{"b":[10,{"c":"deep"}]}}`)

	assert.Equal(t, 10, n.Get("a", "b", "0").IntValue())
	s, ok := n.Get("a", "b", "1", "c").String()
	assert.True(t, ok)
	assert.Equal(t, "deep", s)

	assert.False(t, n.Get("missing", "path").Exists())
	assert.False(t, n.Get("a", "b", "7").Exists())
	assert.False(t, n.Get("a", "b", "x").Exists())
	assert.False(t, n.Get("a", "b", "0", "y").Exists())
}

func TestNode_Scalars(t *testing.T) {
	t.Parallel()

	n := mustNode(t, `{
		"num": 42,
		"frac": 2.5,
		"numStr": "17",
		"word": "hello",
		"yes": "YES",
		"one": 1,
		"t": true,
		"null": null
	}`)

	tests := []struct {
		name      string
		key       string
		wantStr   string
		wantInt   int
		wantBool  bool
		wantIsStr bool
		wantIsInt bool
	}{
		{name: "integer", key: "num", wantStr: "42", wantInt: 42, wantBool: true, wantIsInt: true},
		{name: "fraction", key: "frac", wantStr: "2.5", wantInt: 2, wantBool: true, wantIsInt: true},
		{name: "numeric string", key: "numStr", wantStr: "17", wantInt: 17, wantIsStr: true},
		{name: "word", key: "word", wantStr: "hello", wantIsStr: true},
		{name: "truthy string", key: "yes", wantStr: "YES", wantBool: true, wantIsStr: true},
		{name: "one", key: "one", wantStr: "1", wantInt: 1, wantBool: true, wantIsInt: true},
		{name: "bool", key: "t", wantStr: "true", wantInt: 1, wantBool: true},
		{name: "null", key: "null"},
		{name: "missing", key: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := n.Get(tt.key)
			assert.Equal(t, tt.wantStr, v.StringValue())
			assert.Equal(t, tt.wantInt, v.IntValue())
			assert.Equal(t, tt.wantBool, v.BoolValue())

			_, isStr := v.String()
			assert.Equal(t, tt.wantIsStr, isStr)
			_, isInt := v.Int()
			assert.Equal(t, tt.wantIsInt, isInt)
		})
	}
}

func TestNode_IsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{raw: `{}`, want: true},
		{raw: `[]`, want: true},
		{raw: `null`, want: true},
		{raw: `"text"`, want: true},
		{raw: `12`, want: true},
		{raw: `{"id":1}`, want: false},
		{raw: `[1]`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mustNode(t, tt.raw).IsEmpty())
		})
	}
}

func TestNode_StringArray(t *testing.T) {
	t.Parallel()

	n := mustNode(t, `{"tags":["a",2,true,null],"notArray":"x"}`)
	assert.Equal(t, []string{"a", "2", "true", ""}, n.Get("tags").StringArray())
	assert.Equal(t, []string{}, n.Get("notArray").StringArray())
	assert.Equal(t, []string{}, n.Get("missing").StringArray())
}

func TestNode_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "absolute", raw: `"https://cdn.example.com/a.png"`, want: "https://cdn.example.com/a.png", wantOK: true},
		{name: "relative path", raw: `"/a.png"`},
		{name: "empty", raw: `""`},
		{name: "garbage", raw: `"http://[::1"`},
		{name: "not a string", raw: `5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := mustNode(t, tt.raw).URL()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
