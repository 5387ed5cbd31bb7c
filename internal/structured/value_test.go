package structured

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
	"SEO_Analysis_and_Enhancement_Suggestions": {
		"Title_Analysis_and_Suggestions": {"Analysis": "ok", "Suggestions": ["s1", {"Keyword": "go", "Frequency": 3}]},
		"Overall_SEO_Assessment": null
	}
}`

func TestGet_Present(t *testing.T) {
	v, err := Parse([]byte(doc))
	require.NoError(t, err)

	analysis := v.Get("SEO_Analysis_and_Enhancement_Suggestions", "Title_Analysis_and_Suggestions", "Analysis")
	s, ok := analysis.AsString()
	require.True(t, ok)
	assert.Equal(t, "ok", s)

	suggestions := v.Get("SEO_Analysis_and_Enhancement_Suggestions", "Title_Analysis_and_Suggestions", "Suggestions")
	require.Equal(t, KindList, suggestions.Kind())
	items := suggestions.List()
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0].Text())
	assert.Equal(t, "3", items[1].Get("Frequency").Text())
}

func TestGet_AbsentPaths(t *testing.T) {
	v, err := Parse([]byte(doc))
	require.NoError(t, err)

	tests := []struct {
		name string
		path []string
	}{
		{"missing key", []string{"nope"}},
		{"null leaf", []string{"SEO_Analysis_and_Enhancement_Suggestions", "Overall_SEO_Assessment"}},
		{"through scalar", []string{"SEO_Analysis_and_Enhancement_Suggestions", "Title_Analysis_and_Suggestions", "Analysis", "deeper"}},
		{"through list", []string{"SEO_Analysis_and_Enhancement_Suggestions", "Title_Analysis_and_Suggestions", "Suggestions", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Get(tt.path...)
			assert.True(t, got.IsAbsent())
			assert.Empty(t, got.Text())
			assert.Nil(t, got.List())
		})
	}
}

func TestAbsentRoot(t *testing.T) {
	v, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())
	assert.True(t, v.Get("a", "b").IsAbsent())

	null, err := Parse([]byte("null"))
	require.NoError(t, err)
	assert.True(t, null.IsAbsent())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{"))
	require.Error(t, err)
}

func TestFields_Sorted(t *testing.T) {
	v, err := Parse([]byte(`{"b": 1, "a": "x", "c": null}`))
	require.NoError(t, err)

	fields := v.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.True(t, fields[2].Value.IsAbsent())
}

func TestMarshalJSON(t *testing.T) {
	v, err := Parse([]byte(`{"a":[1,"x"]}`))
	require.NoError(t, err)

	out, err := json.Marshal(v.Get("a"))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"x"]`, string(out))

	out, err = json.Marshal(v.Get("missing"))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
