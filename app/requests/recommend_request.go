package requests

import "github.com/tire-advisor/app/models"

// RecommendRequest is the confirmed specification to search for. Size is
// the only required field.
type RecommendRequest struct {
	Size        string        `json:"size" binding:"required"`
	LoadIndex   *int          `json:"li,omitempty"`
	SpeedRating string        `json:"ss,omitempty"`
	Season      models.Season `json:"season,omitempty"`
}

// ToQuery converts the request into the engine query type.
func (r *RecommendRequest) ToQuery() models.QuerySpec {
	return models.QuerySpec{
		Size:        r.Size,
		LoadIndex:   r.LoadIndex,
		SpeedRating: r.SpeedRating,
		Season:      r.Season,
	}
}
