package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MatchType classifies how a field's value was obtained.
type MatchType string

const (
	MatchFound    MatchType = "found"
	MatchNotFound MatchType = "not_found"
	MatchInferred MatchType = "inferred"
)

// FieldResult is one extracted field as returned by the backend. Page is 0
// and the bounding box is all zeros when no evidence location applies.
type FieldResult struct {
	Value     any       `json:"value"`
	MatchType MatchType `json:"match_type"`
	Comment   *string   `json:"comment"`
	Page      int       `json:"page"`
	XMin      float64   `json:"xmin"`
	YMin      float64   `json:"ymin"`
	XMax      float64   `json:"xmax"`
	YMax      float64   `json:"ymax"`
}

// ValueString renders the extracted value for tabular output. Nulls become
// the empty string; structured values are re-serialized as JSON.
func (r FieldResult) ValueString() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// CommentString renders the comment for tabular output.
func (r FieldResult) CommentString() string {
	if r.Comment == nil {
		return ""
	}
	return *r.Comment
}

// Result maps field names to their extracted values. After a successful
// merge its key set exactly equals the schema's field names.
type Result map[string]FieldResult
