package models

import (
	"encoding/json"
	"fmt"
)

// DeltaEntry is one change recorded by a sync. Name is nil only for the
// synthetic trailer entry, whose New field carries the number of omitted
// changes instead of a score.
type DeltaEntry struct {
	Name *string `json:"name"`
	Old  int     `json:"old"`
	New  int     `json:"new"`
}

// IsTrailer reports whether the entry is the truncation marker appended when
// a delta was capped.
func (e DeltaEntry) IsTrailer() bool {
	return e.Name == nil
}

const deltaVersion = 1

type deltaPayload struct {
	Version int          `json:"v"`
	Entries []DeltaEntry `json:"entries"`
}

// EncodeDelta serializes a delta into the versioned payload stored on a
// StatusUpdate.
func EncodeDelta(entries []DeltaEntry) ([]byte, error) {
	return json.Marshal(deltaPayload{Version: deltaVersion, Entries: entries})
}

// DecodeDelta restores the entries from a stored payload.
func DecodeDelta(raw []byte) ([]DeltaEntry, error) {
	var payload deltaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode delta payload: %w", err)
	}
	if payload.Version != deltaVersion {
		return nil, fmt.Errorf("unsupported delta payload version %d", payload.Version)
	}
	return payload.Entries, nil
}
