package dto

import (
	"github.com/contentloom/contentloom/internal/domain/credit"
	"github.com/contentloom/contentloom/internal/services"
)

// ContentRequest represents a content generation request
type ContentRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=8000"`
}

// ContentResponse carries the generated text plus the remaining credit
// balance for immediate UI reflection.
type ContentResponse struct {
	Text    string           `json:"text"`
	Credits map[string]int64 `json:"credits,omitempty"`
	Warning string           `json:"warning,omitempty"`
}

// FromContentResult converts a content result to its wire shape
func FromContentResult(res *services.ContentResult) *ContentResponse {
	out := &ContentResponse{Text: res.Text, Warning: res.Warning}
	if res.Credits != nil {
		out.Credits = make(map[string]int64, len(res.Credits))
		for _, k := range credit.Kinds() {
			if v, ok := res.Credits[k]; ok {
				out.Credits[string(k)] = v
			}
		}
	}
	return out
}
