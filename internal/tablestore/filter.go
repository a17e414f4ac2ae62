package tablestore

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	filterEqual      = "equal"
	filterLinkRowHas = "link_row_has"
)

type condition struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Filter is a flat group of conditions that must all hold.
type Filter struct {
	FilterType string      `json:"filter_type"`
	Filters    []condition `json:"filters"`
}

// Equal matches rows whose field equals value. Values are compared in their
// string form, as the record store expects.
func Equal(field string, value any) *Filter {
	return &Filter{FilterType: "AND", Filters: []condition{{Type: filterEqual, Field: field, Value: stringify(value)}}}
}

// LinkRowHas matches rows whose link field references rowID.
func LinkRowHas(field string, rowID int64) *Filter {
	return &Filter{FilterType: "AND", Filters: []condition{{Type: filterLinkRowHas, Field: field, Value: strconv.FormatInt(rowID, 10)}}}
}

// And merges the conditions of every filter into one AND group.
func And(filters ...*Filter) *Filter {

	merged := &Filter{FilterType: "AND"}
	for _, f := range filters {
		if f == nil {
			continue
		}
		merged.Filters = append(merged.Filters, f.Filters...)
	}

	return merged
}

func (f *Filter) Encode() (string, error) {

	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode filter: %w", err)
	}

	return string(data), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
