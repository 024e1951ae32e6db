package recipekit

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// Recipe field names as they appear in the JSON record.
const (
	FieldName               = "name"
	FieldImage              = "image"
	FieldAuthor             = "author"
	FieldRecipeCategory     = "recipeCategory"
	FieldRecipeCuisine      = "recipeCuisine"
	FieldDescription        = "description"
	FieldRecipeIngredient   = "recipeIngredient"
	FieldRecipeInstructions = "recipeInstructions"
	FieldRecipeYield        = "recipeYield"
	FieldPrepTime           = "prepTime"
	FieldCookTime           = "cookTime"
	FieldTotalTime          = "totalTime"
	FieldNutrition          = "nutrition"
	FieldURL                = "url"
)

// AllowedFields lists the only keys a Recipe record may carry.
var AllowedFields = []string{
	FieldName,
	FieldImage,
	FieldAuthor,
	FieldRecipeCategory,
	FieldRecipeCuisine,
	FieldDescription,
	FieldRecipeIngredient,
	FieldRecipeInstructions,
	FieldRecipeYield,
	FieldPrepTime,
	FieldCookTime,
	FieldTotalTime,
	FieldNutrition,
	FieldURL,
}

// IsAllowedField reports whether key is part of the Recipe allow-list.
func IsAllowedField(key string) bool {
	for _, f := range AllowedFields {
		if f == key {
			return true
		}
	}
	return false
}

// NutritionInformation maps a nutrition fact (e.g. "calories",
// "proteinContent") to its free-text value.
type NutritionInformation map[string]string

// Recipe is the canonical record produced by every extractor.
// Times are ISO-8601 durations. Absent fields are omitted from JSON.
type Recipe struct {
	Name               string               `json:"name,omitempty"`
	Description        string               `json:"description,omitempty"`
	URL                string               `json:"url,omitempty"`
	Image              string               `json:"image,omitempty"`
	Author             string               `json:"author,omitempty"`
	RecipeCategory     string               `json:"recipeCategory,omitempty"`
	RecipeCuisine      string               `json:"recipeCuisine,omitempty"`
	RecipeYield        string               `json:"recipeYield,omitempty"`
	PrepTime           string               `json:"prepTime,omitempty"`
	CookTime           string               `json:"cookTime,omitempty"`
	TotalTime          string               `json:"totalTime,omitempty"`
	RecipeIngredient   []string             `json:"recipeIngredient,omitempty"`
	RecipeInstructions []string             `json:"recipeInstructions,omitempty"`
	Nutrition          NutritionInformation `json:"nutrition,omitempty"`
}

// Validate returns an error if the recipe cannot be stored.
func (r *Recipe) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "recipe URL required")
	}
	return nil
}

// WriteJSON writes the recipe as indented UTF-8 JSON.
// Non-ASCII text and HTML characters are written as-is.
func (r *Recipe) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}

// Fields is the intermediate mapping an extractor assembles before it is
// turned into a Recipe. Values are strings, string lists, nutrition maps or,
// for linked data, decoded JSON values.
type Fields map[string]any

// Set stores a single value under key, replacing any previous value.
func (f Fields) Set(key string, value any) {
	f[key] = value
}

// Append adds value to the ordered list stored under key.
func (f Fields) Append(key, value string) {
	list, _ := f[key].([]string)
	f[key] = append(list, value)
}

// Filter returns a copy of f restricted to AllowedFields.
func (f Fields) Filter() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if IsAllowedField(k) {
			out[k] = v
		}
	}
	return out
}

// Recipe filters f through the allow-list and builds the typed record.
func (f Fields) Recipe() *Recipe {
	f = f.Filter()

	r := &Recipe{}
	scalars := map[string]*string{
		FieldName:           &r.Name,
		FieldDescription:    &r.Description,
		FieldURL:            &r.URL,
		FieldImage:          &r.Image,
		FieldAuthor:         &r.Author,
		FieldRecipeCategory: &r.RecipeCategory,
		FieldRecipeCuisine:  &r.RecipeCuisine,
		FieldRecipeYield:    &r.RecipeYield,
		FieldPrepTime:       &r.PrepTime,
		FieldCookTime:       &r.CookTime,
		FieldTotalTime:      &r.TotalTime,
	}
	for key, dst := range scalars {
		if s, ok := scalarString(f[key]); ok {
			*dst = s
		}
	}
	r.RecipeIngredient = stringList(f[FieldRecipeIngredient])
	r.RecipeInstructions = stringList(f[FieldRecipeInstructions])
	r.Nutrition = nutritionInformation(f[FieldNutrition])
	return r
}

// scalarString flattens a decoded value into display text.
// Sequences are joined with ", " and objects yield their name, url or text.
func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case json.Number:
		return v.String(), true
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return strings.Join(v, ", "), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalarString(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	case map[string]any:
		for _, key := range []string{"name", "url", "text", "@id"} {
			if s, ok := scalarString(v[key]); ok {
				return s, true
			}
		}
	}
	return "", false
}

func stringList(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []string:
		if len(v) == 0 {
			return nil
		}
		return append([]string(nil), v...)
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func nutritionInformation(v any) NutritionInformation {
	out := make(NutritionInformation)
	switch v := v.(type) {
	case NutritionInformation:
		for k, s := range v {
			out[k] = s
		}
	case map[string]string:
		for k, s := range v {
			out[k] = s
		}
	case map[string]any:
		for k, item := range v {
			if strings.HasPrefix(k, "@") {
				continue
			}
			if s, ok := scalarString(item); ok {
				out[k] = s
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
