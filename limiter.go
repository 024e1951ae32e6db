package recipekit

import "context"

// DomainLimiter provides per-domain rate limiting for page retrieval.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSet remembers URLs already handled by a batch import.
type URLSet interface {
	// Seen reports whether url was recorded before and records it.
	// False positives are allowed; false negatives are not.
	Seen(url string) bool
}
