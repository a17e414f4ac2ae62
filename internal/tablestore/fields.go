package tablestore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LinkRow is a link-to-table field. The store returns [{"id":1,"value":"..."}]
// and accepts [1] on write.
type LinkRow []int64

func Link(ids ...int64) LinkRow {
	return LinkRow(ids)
}

// First returns the first linked row id.
func (l LinkRow) First() (int64, bool) {
	if len(l) == 0 {
		return 0, false
	}

	return l[0], true
}

func (l LinkRow) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]int64(l))
}

func (l *LinkRow) UnmarshalJSON(data []byte) error {

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("link row must be an array: %w", err)
	}

	ids := make(LinkRow, 0, len(raw))
	for _, item := range raw {
		var ref struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(item, &ref); err == nil {
			ids = append(ids, ref.ID)
			continue
		}

		var id int64
		if err := json.Unmarshal(item, &id); err != nil {
			return fmt.Errorf("unrecognised link row entry %s", item)
		}
		ids = append(ids, id)
	}

	*l = ids
	return nil
}

// SelectValue is a single-select field. The store returns
// {"id":1,"value":"discount","color":"..."} and accepts the plain value.
type SelectValue string

func (s *SelectValue) UnmarshalJSON(data []byte) error {

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = ""
		return nil
	}

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = SelectValue(plain)
		return nil
	}

	var option struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &option); err != nil {
		return fmt.Errorf("unrecognised select value %s", data)
	}

	*s = SelectValue(option.Value)
	return nil
}
