package assistant

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoRecommendation = errors.New("no recommendation found in reply")

// Recommendation is the JSON object the model is asked to embed in its reply.
type Recommendation struct {
	Message    string  `json:"message"`
	ProductIDs []int64 `json:"product_ids"`
}

// ExtractRecommendation returns the first {...} span of text that decodes as a
// recommendation with a message. Prose and code fences around it are ignored.
func ExtractRecommendation(text string) (*Recommendation, error) {

	for i := strings.IndexByte(text, '{'); i >= 0; {
		var candidate struct {
			Message    *string `json:"message"`
			ProductIDs []int64 `json:"product_ids"`
		}

		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&candidate); err == nil && candidate.Message != nil {
			return &Recommendation{Message: *candidate.Message, ProductIDs: candidate.ProductIDs}, nil
		}

		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}

	return nil, ErrNoRecommendation
}
