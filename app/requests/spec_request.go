package requests

import "github.com/tire-advisor/app/models"

// ExtractOptions per-request extraction options.
type ExtractOptions struct {
	UseCache bool `json:"use_cache,omitempty"`
}

// ExtractSpecRequest carries one recognized-text sample.
type ExtractSpecRequest struct {
	Text    string         `json:"text" binding:"required"`
	Options ExtractOptions `json:"options,omitempty"`
}

// ValidateSpecRequest carries a possibly user-edited spec for validation.
type ValidateSpecRequest struct {
	Spec models.ExtractedSpec `json:"spec" binding:"required"`
}

// CandidatesRequest carries a partial spec needing completion hints.
type CandidatesRequest struct {
	Spec models.ExtractedSpec `json:"spec" binding:"required"`
}
