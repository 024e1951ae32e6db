// Package recipekit extracts structured recipe data from recipe web pages.
// A site-specific extractor is selected from the page URL and turns the
// parsed page into a canonical Recipe record, using embedded schema.org
// linked data where available and DOM selectors otherwise.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package recipekit
