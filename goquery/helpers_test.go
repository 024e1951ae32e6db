package goquery_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/keyran/recipekit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

// assertAllowedKeys checks the JSON form of r only carries allow-listed keys.
func assertAllowedKeys(t *testing.T, r *recipekit.Recipe) {
	t.Helper()

	var buf strings.Builder
	require.NoError(t, r.WriteJSON(&buf))

	var keys map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &keys))
	for k := range keys {
		assert.True(t, recipekit.IsAllowedField(k), "unexpected key %q", k)
	}
}
