package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/keyran/recipekit"
	"golang.org/x/net/html"
)

var _ recipekit.Extractor = (*MicrodataExtractor)(nil)

const (
	recipeContainer = `[itemtype="http://schema.org/Recipe"], [itemtype="https://schema.org/Recipe"]`
	itemprop        = "itemprop"
)

// MicrodataClasses names the site-specific CSS classes the microdata
// extractor relies on for values the itemprop markup does not carry cleanly.
// An empty class disables its lookup.
type MicrodataClasses struct {
	IngredientRow    string // container of one ingredient line and its amount
	IngredientAmount string // amount inside IngredientRow
	StepNumber       string // step number next to or inside an instruction
	AuthorName       string // author name inside the author itemprop
	Title            string // heading inside the name itemprop
	Description      string // recipe summary
	Picture          string // picture element holding the main image
}

// EdaRuClasses holds the classes used by eda.ru.
var EdaRuClasses = MicrodataClasses{
	IngredientRow:    "emotion-ydhjlb",
	IngredientAmount: "emotion-bsdd3p",
	StepNumber:       "emotion-1hreea5",
	AuthorName:       "emotion-1utpb33",
	Title:            "emotion-gl52ge",
	Description:      "emotion-aiknw3",
	Picture:          "emotion-0",
}

// MicrodataExtractor extracts recipes from pages annotating a schema.org
// Recipe container with itemprop attributes.
type MicrodataExtractor struct {
	classes MicrodataClasses
}

// NewMicrodataExtractor creates a MicrodataExtractor using the given classes.
func NewMicrodataExtractor(classes MicrodataClasses) *MicrodataExtractor {
	return &MicrodataExtractor{classes: classes}
}

// Name implements recipekit.Extractor.
func (e *MicrodataExtractor) Name() string {
	return "microdata"
}

// Extract implements recipekit.Extractor. Missing markup never fails the
// extraction; the affected fields are left out of the record.
func (e *MicrodataExtractor) Extract(doc *html.Node, url string) (*recipekit.Recipe, error) {
	d := goquery.NewDocumentFromNode(doc)
	fields := make(recipekit.Fields)

	if container := d.Find(recipeContainer).First(); container.Length() > 0 {
		e.walk(container, fields)

		if sel, ok := findClass(container, e.classes.Description); ok {
			fields.Set(recipekit.FieldDescription, strings.TrimSpace(sel.Text()))
		}
		if src, ok := e.image(container); ok {
			fields.Set(recipekit.FieldImage, src)
		}
	}

	fields.Set(recipekit.FieldURL, url)
	return fields.Recipe(), nil
}

// walk visits every itemprop element under container in document order,
// nested ones included.
func (e *MicrodataExtractor) walk(container *goquery.Selection, fields recipekit.Fields) {
	container.Find("[" + itemprop + "]").Each(func(_ int, el *goquery.Selection) {
		name, _ := el.Attr(itemprop)
		value := propertyValue(el)

		switch name {
		case recipekit.FieldRecipeIngredient:
			fields.Append(name, e.ingredient(el, value))
		case recipekit.FieldRecipeInstructions:
			fields.Append(name, e.instruction(el, value))
		case recipekit.FieldAuthor:
			if sel, ok := findClass(el, e.classes.AuthorName); ok {
				value = strings.TrimSpace(sel.Text())
			}
			if value != "" {
				fields.Set(name, value)
			}
		case recipekit.FieldNutrition:
			if facts := nutritionFacts(el); len(facts) > 0 {
				fields.Set(name, facts)
			}
		case recipekit.FieldName:
			if e.classes.Title == "" {
				fields.Set(name, value)
			} else if sel, ok := findClass(el, e.classes.Title); ok {
				fields.Set(name, propertyValue(sel))
			}
		default:
			fields.Set(name, value)
		}
	})
}

// ingredient annotates an ingredient with the amount found in its row.
func (e *MicrodataExtractor) ingredient(el *goquery.Selection, value string) string {
	if e.classes.IngredientRow == "" {
		return value
	}
	row := el.ParentsFiltered("." + e.classes.IngredientRow).First()
	if row.Length() == 0 {
		return value
	}
	amount, ok := findClass(row, e.classes.IngredientAmount)
	if !ok {
		return value
	}
	return value + " (" + strings.TrimSpace(amount.Text()) + ")"
}

// instruction prefixes a step with its number. The number is looked up
// inside the step first, then in the nearest preceding sibling.
func (e *MicrodataExtractor) instruction(el *goquery.Selection, value string) string {
	num, ok := findClass(el, e.classes.StepNumber)
	if !ok && e.classes.StepNumber != "" {
		num = el.PrevAllFiltered("." + e.classes.StepNumber).First()
		ok = num.Length() > 0
	}
	if !ok {
		return value
	}
	return strings.TrimSpace(num.Text()) + " " + value
}

func (e *MicrodataExtractor) image(container *goquery.Selection) (string, bool) {
	if e.classes.Picture == "" {
		return "", false
	}
	return findAttr(container, "picture."+e.classes.Picture+" img", "src")
}

// propertyValue extracts the raw value of an itemprop element according to
// its shape.
func propertyValue(el *goquery.Selection) string {
	if isHowToStep(el) {
		if text := el.Find("[" + itemprop + `="text"]`).First(); text.Length() > 0 {
			return recipekit.CleanText(text.Text())
		}
		return recipekit.CleanText(el.Text())
	}

	switch goquery.NodeName(el) {
	case "meta":
		content, _ := el.Attr("content")
		return content
	case "h1":
		return recipekit.ReplaceNBSP(el.Text())
	default:
		return recipekit.CleanText(el.Text())
	}
}

func isHowToStep(el *goquery.Selection) bool {
	t, ok := el.Attr("itemtype")
	if !ok {
		return false
	}
	return t == "http://schema.org/HowToStep" || t == "https://schema.org/HowToStep"
}

// nutritionFacts collects the itemprop values nested in a nutrition block.
func nutritionFacts(el *goquery.Selection) recipekit.NutritionInformation {
	facts := make(recipekit.NutritionInformation)
	el.Find("[" + itemprop + "]").Each(func(_ int, fact *goquery.Selection) {
		name, _ := fact.Attr(itemprop)
		if value := propertyValue(fact); name != "" && value != "" {
			facts[name] = value
		}
	})
	return facts
}
