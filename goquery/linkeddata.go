package goquery

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/keyran/recipekit"
)

// ErrLinkedDataUnusable reports that a page carries no usable schema.org
// Recipe linked data: no JSON-LD script, no Recipe node, or a payload that
// does not parse. Extractors fall back to DOM selectors on this error only.
var ErrLinkedDataUnusable = errors.New("linked data unusable")

const linkedDataSelector = `script[type="application/ld+json"]`

// ExtractLinkedData finds the first schema.org Recipe node embedded as JSON-LD
// and normalizes it into recipe fields. Scripts are scanned in document order;
// each may hold a single node, an array of nodes or an @graph container.
//
// Normalization reduces image and recipeYield sequences to their first
// element, reduces instruction steps to their text and drops every key
// starting with "@".
func ExtractLinkedData(doc *goquery.Document) (recipekit.Fields, error) {
	scripts := doc.Find(linkedDataSelector)
	if scripts.Length() == 0 {
		return nil, fmt.Errorf("%w: no JSON-LD script", ErrLinkedDataUnusable)
	}

	var node map[string]any
	var parseErr error
	scripts.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			if parseErr == nil {
				parseErr = err
			}
			return true
		}
		node = findRecipeNode(payload)
		return node == nil
	})

	if node == nil {
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrLinkedDataUnusable, parseErr)
		}
		return nil, fmt.Errorf("%w: no Recipe node", ErrLinkedDataUnusable)
	}

	return normalizeLinkedRecipe(node), nil
}

// findRecipeNode returns the first node typed Recipe in a decoded payload.
func findRecipeNode(v any) map[string]any {
	switch v := v.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []any:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch t := t.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func normalizeLinkedRecipe(node map[string]any) recipekit.Fields {
	f := make(recipekit.Fields, len(node))
	for k, v := range node {
		if strings.HasPrefix(k, "@") {
			continue
		}
		f[k] = v
	}

	if v, ok := f[recipekit.FieldImage]; ok {
		setOrDelete(f, recipekit.FieldImage, imageURL(firstElement(v)))
	}
	if v, ok := f[recipekit.FieldRecipeYield]; ok {
		setOrDelete(f, recipekit.FieldRecipeYield, firstElement(v))
	}
	if v, ok := f[recipekit.FieldRecipeInstructions]; ok {
		if steps := instructionTexts(v); len(steps) > 0 {
			f[recipekit.FieldRecipeInstructions] = steps
		} else {
			delete(f, recipekit.FieldRecipeInstructions)
		}
	}
	return f
}

func setOrDelete(f recipekit.Fields, key string, v any) {
	if v == nil {
		delete(f, key)
		return
	}
	f[key] = v
}

// firstElement reduces a sequence to its first element.
func firstElement(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

// imageURL reduces an ImageObject to its url.
func imageURL(v any) any {
	if obj, ok := v.(map[string]any); ok {
		if u, ok := obj["url"].(string); ok {
			return u
		}
		return nil
	}
	return v
}

// instructionTexts flattens HowToStep objects, HowToSection groups and plain
// strings into the ordered list of step texts.
func instructionTexts(v any) []string {
	var out []string
	switch v := v.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			out = append(out, instructionTexts(item)...)
		}
	case map[string]any:
		if elements, ok := v["itemListElement"]; ok {
			return instructionTexts(elements)
		}
		if text, ok := v["text"].(string); ok {
			if s := strings.TrimSpace(text); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
