package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pagination mirrors the upstream's list envelope metadata.
type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page,omitempty"`
	PageSize int   `json:"pageSize,omitempty"`
}

type listEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// DecodeList resolves the two list shapes the upstream serves, a bare JSON
// array or a {data, pagination} envelope, into items plus a total. The
// total prefers pagination.total when the envelope carries one, then falls
// back to the item count, then zero. items must be a pointer to a slice.
// Every page controller decodes lists through here; nothing re-implements
// shape sniffing ad hoc.
func DecodeList(payload []byte, items interface{}) (int64, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return 0, nil
	}

	if trimmed[0] == '[' {
		count, err := decodeInto(trimmed, items)
		if err != nil {
			return 0, err
		}
		return count, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return 0, fmt.Errorf("failed to decode list envelope: %w", err)
	}

	var count int64
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		var err error
		count, err = decodeInto(envelope.Data, items)
		if err != nil {
			return 0, err
		}
	}

	if envelope.Pagination != nil {
		return envelope.Pagination.Total, nil
	}
	return count, nil
}

func decodeInto(data []byte, items interface{}) (int64, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("failed to decode list items: %w", err)
	}
	if err := json.Unmarshal(data, items); err != nil {
		return 0, fmt.Errorf("failed to decode list items: %w", err)
	}
	return int64(len(raw)), nil
}

// DecodeItem resolves a single-record reply, preferring the data field of a
// {data: {...}} envelope and otherwise decoding the payload directly.
func DecodeItem(payload []byte, dest interface{}) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil &&
			len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			return json.Unmarshal(envelope.Data, dest)
		}
	}

	return json.Unmarshal(trimmed, dest)
}
