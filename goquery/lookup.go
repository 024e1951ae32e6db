package goquery

import "github.com/PuerkitoBio/goquery"

// Field lookups return ok=false when the element is absent so callers can
// skip the field instead of failing the whole extraction.

// findText returns the text of the first element under scope matching selector.
func findText(scope *goquery.Selection, selector string) (string, bool) {
	sel := scope.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// findAttr returns an attribute of the first element under scope matching selector.
func findAttr(scope *goquery.Selection, selector, attr string) (string, bool) {
	sel := scope.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(attr)
}

// findClass returns the first element under scope carrying class.
// An empty class never matches.
func findClass(scope *goquery.Selection, class string) (*goquery.Selection, bool) {
	if class == "" {
		return nil, false
	}
	sel := scope.Find("." + class).First()
	return sel, sel.Length() > 0
}
