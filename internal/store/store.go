package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"jobinsight-engine/internal/domain"
)

var errTrailingData = errors.New("trailing data after JSON document")

// Store is the read-only record set loaded for one session, plus an optional
// "current company" selection. Records are never mutated after construction.
type Store struct {
	source   string
	records  []domain.Record
	warning  string
	selected domain.Record
	hasSel   bool
}

// Load reads a JSON document from path. Any failure leaves the store empty and
// recorded in Warning(); the store is always usable.
func Load(path string, log zerolog.Logger) *Store {
	b, err := os.ReadFile(path)
	if err != nil {
		s := &Store{source: path, records: []domain.Record{}}
		if errors.Is(err, os.ErrNotExist) {
			s.warning = fmt.Sprintf("data file %s not found", path)
		} else {
			s.warning = fmt.Sprintf("read data file %s: %v", path, err)
		}
		log.Warn().Str("path", path).Msg(s.warning)
		return s
	}
	return LoadReader(bytes.NewReader(b), path, log)
}

// LoadReader decodes a JSON document from r. name is only used for messages.
func LoadReader(r io.Reader, name string, log zerolog.Logger) *Store {
	s := &Store{source: name, records: []domain.Record{}}

	var raw any
	dec := json.NewDecoder(r)
	err := dec.Decode(&raw)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errTrailingData
		}
	}
	if err != nil {
		s.warning = fmt.Sprintf("error loading data: %v", err)
		log.Warn().Str("source", name).Err(err).Msg("data document is not valid JSON")
		return s
	}

	records, skipped, err := normalize(raw)
	if err != nil {
		s.warning = fmt.Sprintf("error loading data: %v", err)
		log.Warn().Str("source", name).Err(err).Msg("data document has unusable shape")
		return s
	}
	if skipped > 0 {
		s.warning = fmt.Sprintf("skipped %d non-object entries", skipped)
		log.Warn().Str("source", name).Int("skipped", skipped).Msg("data document contains non-object entries")
	}

	s.records = records
	log.Debug().Str("source", name).Int("records", len(records)).Msg("records loaded")
	return s
}

// FromRecords wraps an already-parsed sequence. The slice is cloned so later
// edits by the caller cannot reach the store.
func FromRecords(records []domain.Record) *Store {
	return &Store{source: "memory", records: slices.Clone(records)}
}

// normalize turns a decoded document into a record sequence: a bare object
// becomes a one-element sequence, an array is used as-is.
func normalize(raw any) ([]domain.Record, int, error) {
	switch v := raw.(type) {
	case map[string]any:
		return []domain.Record{domain.Record(v)}, 0, nil
	case []any:
		out := make([]domain.Record, 0, len(v))
		skipped := 0
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				skipped++
				continue
			}
			out = append(out, domain.Record(m))
		}
		return out, skipped, nil
	default:
		return nil, 0, fmt.Errorf("expected object or array, got %T", raw)
	}
}

// Records returns the loaded sequence in source order. Callers must treat it as
// read-only.
func (s *Store) Records() []domain.Record {
	return slices.Clip(s.records)
}

func (s *Store) Len() int { return len(s.records) }

// Warning is the non-fatal load problem, empty when the load was clean.
func (s *Store) Warning() string { return s.warning }

func (s *Store) Source() string { return s.source }

// SelectCompany selects the first record whose company_name equals name,
// ignoring case. A miss clears any previous selection.
func (s *Store) SelectCompany(name string) bool {
	for _, r := range s.records {
		if strings.EqualFold(r.String(domain.FieldCompanyName, ""), name) {
			s.selected = r
			s.hasSel = true
			return true
		}
	}
	s.selected = nil
	s.hasSel = false
	return false
}

// Selected returns the currently selected record.
func (s *Store) Selected() (domain.Record, bool) {
	return s.selected, s.hasSel
}

// SelectedField is the one safe accessor every company view is built on:
// the field from the selected record, or def.
func (s *Store) SelectedField(field string, def any) any {
	if !s.hasSel {
		return def
	}
	return s.selected.Get(field, def)
}

// Snapshot returns an independent store over the same records with no
// selection, for per-request company lookups.
func (s *Store) Snapshot() *Store {
	return &Store{source: s.source, records: s.records, warning: s.warning}
}
