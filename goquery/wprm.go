package goquery

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/keyran/recipekit"
	"golang.org/x/net/html"
)

var _ recipekit.Extractor = (*WPRMExtractor)(nil)

// WPRM (WP Recipe Maker) markup.
const (
	wprmContainer    = "div.wprm-recipe-container"
	wprmNotes        = "div.wprm-recipe-notes"
	wprmIngredients  = "ul.wprm-recipe-ingredients li"
	wprmInstructions = "div.wprm-recipe-instruction-text"
	wprmImage        = "div.wprm-recipe-image"
)

// wprmTextFields maps recipe fields to the element holding their text.
var wprmTextFields = []struct {
	field    string
	selector string
}{
	{recipekit.FieldName, "h2.wprm-recipe-name"},
	{recipekit.FieldRecipeCategory, "span.wprm-recipe-course"},
	{recipekit.FieldRecipeCuisine, "span.wprm-recipe-cuisine"},
	{recipekit.FieldRecipeYield, "span.wprm-recipe-servings"},
	{recipekit.FieldAuthor, "span.wprm-recipe-author"},
	{recipekit.FieldDescription, "div.wprm-recipe-summary"},
}

// wprmTimeFields maps duration fields to the element holding their minutes.
var wprmTimeFields = []struct {
	field    string
	selector string
}{
	{recipekit.FieldPrepTime, "span.wprm-recipe-prep_time-minutes"},
	{recipekit.FieldCookTime, "span.wprm-recipe-cook_time-minutes"},
	{recipekit.FieldTotalTime, "span.wprm-recipe-total_time-minutes"},
}

// WPRMExtractor extracts recipes from sites built on the WP Recipe Maker
// plugin. It prefers the page's JSON-LD and falls back to the plugin's
// markup when the linked data is unusable.
type WPRMExtractor struct{}

// NewWPRMExtractor creates a WPRMExtractor.
func NewWPRMExtractor() *WPRMExtractor {
	return &WPRMExtractor{}
}

// Name implements recipekit.Extractor.
func (e *WPRMExtractor) Name() string {
	return "wprm"
}

// Extract implements recipekit.Extractor.
func (e *WPRMExtractor) Extract(doc *html.Node, url string) (*recipekit.Recipe, error) {
	d := goquery.NewDocumentFromNode(doc)

	fields, err := ExtractLinkedData(d)
	switch {
	case err == nil:
		if notes, ok := wprmNotesText(d.Selection); ok {
			fields[recipekit.FieldRecipeInstructions] = appendInstruction(fields[recipekit.FieldRecipeInstructions], notes)
		}
	case errors.Is(err, ErrLinkedDataUnusable):
		fields = e.extractMarkup(d.Selection)
	default:
		// ExtractLinkedData currently fails only with ErrLinkedDataUnusable.
		// Any other error is a defect and must not fall back to markup.
		return nil, err
	}

	fields.Set(recipekit.FieldURL, url)
	return fields.Recipe(), nil
}

// extractMarkup reads every field from the plugin's markup. Each field is
// looked up independently and omitted when its element is missing.
func (e *WPRMExtractor) extractMarkup(root *goquery.Selection) recipekit.Fields {
	scope := root.Find(wprmContainer).First()
	if scope.Length() == 0 {
		scope = root
	}

	fields := make(recipekit.Fields)
	for _, f := range wprmTextFields {
		if text, ok := findText(scope, f.selector); ok {
			fields.Set(f.field, strings.TrimSpace(text))
		}
	}

	scope.Find(wprmIngredients).Each(func(_ int, s *goquery.Selection) {
		if text := recipekit.StripDecorative(recipekit.CollapseSpace(s.Text())); text != "" {
			fields.Append(recipekit.FieldRecipeIngredient, text)
		}
	})

	scope.Find(wprmInstructions).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			fields.Append(recipekit.FieldRecipeInstructions, text)
		}
	})
	if notes, ok := wprmNotesText(scope); ok {
		fields.Append(recipekit.FieldRecipeInstructions, notes)
	}

	for _, f := range wprmTimeFields {
		if minutes, ok := findText(scope, f.selector); ok && strings.TrimSpace(minutes) != "" {
			fields.Set(f.field, recipekit.MinutesDuration(minutes))
		}
	}

	if src, ok := wprmImageSource(scope); ok {
		fields.Set(recipekit.FieldImage, recipekit.StripQuery(src))
	}

	return fields
}

// wprmNotesText returns the notes block formatted as a trailing instruction.
func wprmNotesText(scope *goquery.Selection) (string, bool) {
	text, ok := findText(scope, wprmNotes)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return "NOTES: \n" + text, true
}

// wprmImageSource prefers the noscript fallback image, which carries the
// real source on lazy-loading pages, over the primary img tag.
func wprmImageSource(scope *goquery.Selection) (string, bool) {
	image := scope.Find(wprmImage).First()
	if image.Length() == 0 {
		return "", false
	}
	if src, ok := noscriptImageSource(image.Find("noscript").First()); ok {
		return src, true
	}
	return findAttr(image, "img", "src")
}

// noscriptImageSource returns the src of the img inside a noscript element.
// The HTML parser keeps noscript content as raw text when scripting is
// enabled, so that text is parsed again.
func noscriptImageSource(noscript *goquery.Selection) (string, bool) {
	if noscript.Length() == 0 {
		return "", false
	}
	if src, ok := findAttr(noscript, "img", "src"); ok {
		return src, true
	}
	inner, err := goquery.NewDocumentFromReader(strings.NewReader(noscript.Text()))
	if err != nil {
		return "", false
	}
	return findAttr(inner.Selection, "img", "src")
}

// appendInstruction adds a step to a decoded instruction list.
func appendInstruction(v any, step string) any {
	switch v := v.(type) {
	case []string:
		return append(v, step)
	case []any:
		return append(v, step)
	case string:
		return []string{v, step}
	}
	return []string{step}
}
