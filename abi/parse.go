package abi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/wippyai/abigen/errors"
)

// Document is a decoded ABI description.
type Document struct {
	Entries []Entry
	// Warnings lists entries that could not be decoded and were skipped, and
	// members of kept entries that were degraded while decoding.
	Warnings []*errors.Error
}

// Parse decodes an ABI description. The top-level value must be a single
// entry object or an array of entries; anything else is a hard failure.
// Individual entries that fail to decode are skipped with a warning. Type
// nodes, fields and enum cases of the wrong JSON shape degrade in place and
// are reported without dropping their entry.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "Failed to parse JSON file: empty input")
	}

	var raws []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Cause(err).
				Detail("Failed to parse JSON file: %v", err).
				Build()
		}
	case '{':
		if !json.Valid(trimmed) {
			var probe any
			err := json.Unmarshal(trimmed, &probe)
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Cause(err).
				Detail("Failed to parse JSON file: %v", err).
				Build()
		}
		raws = []json.RawMessage{trimmed}
	default:
		var probe any
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Cause(err).
				Detail("Failed to parse JSON file: %v", err).
				Build()
		}
		return nil, errors.InvalidInput(errors.PhaseParse,
			"Failed to parse JSON file: JSON file content is not valid (expected object or array)")
	}

	doc := &Document{Entries: make([]Entry, 0, len(raws))}
	for i, raw := range raws {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			doc.Warnings = append(doc.Warnings, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path("entries", strconv.Itoa(i)).
				Cause(err).
				Detail("entry skipped").
				Build())
			continue
		}
		doc.Warnings = append(doc.Warnings, e.decodeWarnings()...)
		doc.Entries = append(doc.Entries, e)
	}
	return doc, nil
}
