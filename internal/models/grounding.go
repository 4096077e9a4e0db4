// ABOUTME: GroundingSource sum type selecting corpus or ad-hoc grounding
// ABOUTME: Exactly one source is active per request, never both merged
package models

// GroundingSource selects where a request's grounding chunks come from:
// the persisted backend corpus, or ad-hoc material supplied with the
// request. The two are mutually exclusive and resolved once per request.
type GroundingSource interface {
	groundingSource()
}

// BackendCorpus grounds the request on the persisted context store.
type BackendCorpus struct{}

func (BackendCorpus) groundingSource() {}

// AdHocContext grounds the request on caller-supplied text (pasted text or
// a single uploaded file). Ad-hoc chunks live only for the request and are
// never written to the persisted store.
type AdHocContext struct {
	// Name is a display handle for the material, e.g. the upload's file name.
	Name string

	// Text is the raw material before trimming and chunking.
	Text string
}

func (AdHocContext) groundingSource() {}

// GroundingContext is the assembled output handed to the generation step.
type GroundingContext struct {
	// Joined is the budget-bounded context blob for the prompt.
	Joined string `json:"joined"`

	// Results are the ranked chunks the blob was assembled from, for
	// display and inspection.
	Results []RetrievalResult `json:"results"`
}
