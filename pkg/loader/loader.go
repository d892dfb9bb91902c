// Package loader reads search term files into pattern sets.
//
// A file holds a "search_terms" array. Each entry is either a single
// position term:
//
//	{"position": "B", "term": "ALGO4", "digits": 5, "exclude_last": false}
//
// or a combined front and back term:
//
//	{"position": "FB", "front_term": "AB", "front_digits": 2,
//	 "back_term": "YZ", "back_digits": 2, "exclude_last": true}
//
// JSON is the default format; .yaml and .yml files are parsed as YAML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Amr-9/algohunter/pkg/pattern"
	"gopkg.in/yaml.v3"
)

// ErrNoSearchTerms is returned when a file has no search_terms entries.
var ErrNoSearchTerms = errors.New("file must contain a non-empty 'search_terms' array")

// File is the on-disk layout of a search terms file.
type File struct {
	SearchTerms []Entry `json:"search_terms" yaml:"search_terms"`
}

// Entry is one search term definition.
type Entry struct {
	Position    string `json:"position" yaml:"position"`
	Term        string `json:"term,omitempty" yaml:"term,omitempty"`
	Digits      *int   `json:"digits,omitempty" yaml:"digits,omitempty"`
	FrontTerm   string `json:"front_term,omitempty" yaml:"front_term,omitempty"`
	FrontDigits *int   `json:"front_digits,omitempty" yaml:"front_digits,omitempty"`
	BackTerm    string `json:"back_term,omitempty" yaml:"back_term,omitempty"`
	BackDigits  *int   `json:"back_digits,omitempty" yaml:"back_digits,omitempty"`
	ExcludeLast bool   `json:"exclude_last,omitempty" yaml:"exclude_last,omitempty"`
}

// LoadFile reads and validates a search terms file.
func LoadFile(path string) (*pattern.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search terms: %w", err)
	}

	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err = ParseYAML(data)
	default:
		f, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	set, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ParseJSON decodes a JSON search terms document. Unknown fields are rejected.
func ParseJSON(data []byte) (*File, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("invalid JSON format: unexpected data after the document")
	}
	return &f, nil
}

// ParseYAML decodes a YAML search terms document. Unknown fields are rejected.
func ParseYAML(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid YAML format: %w", err)
	}
	return &f, nil
}

// Build validates every entry and returns the resulting set. Combined
// entries become a linked front and back pair.
func (f *File) Build() (*pattern.Set, error) {
	if len(f.SearchTerms) == 0 {
		return nil, ErrNoSearchTerms
	}

	var specs []pattern.Spec
	for i, e := range f.SearchTerms {
		built, err := e.Specs()
		if err != nil {
			return nil, fmt.Errorf("search term %d: %w", i+1, err)
		}
		specs = append(specs, built...)
	}
	return pattern.NewSet(specs...)
}

// Specs converts the entry into one spec, or two linked specs for "FB".
func (e Entry) Specs() ([]pattern.Spec, error) {
	if strings.EqualFold(strings.TrimSpace(e.Position), "FB") {
		if e.FrontDigits == nil {
			return nil, missingField("front_digits")
		}
		if e.BackDigits == nil {
			return nil, missingField("back_digits")
		}
		front, back, err := pattern.NewLinkedPair(e.FrontTerm, *e.FrontDigits, e.BackTerm, *e.BackDigits, e.ExcludeLast)
		if err != nil {
			return nil, err
		}
		return []pattern.Spec{front, back}, nil
	}

	pos, err := pattern.ParsePosition(e.Position)
	if err != nil {
		return nil, err
	}
	if e.Digits == nil {
		return nil, missingField("digits")
	}
	spec, err := pattern.NewSpec(e.Term, *e.Digits, pos, e.ExcludeLast)
	if err != nil {
		return nil, err
	}
	return []pattern.Spec{spec}, nil
}

// FromSet converts a pattern set back into its file form.
func FromSet(set *pattern.Set) *File {
	f := &File{}
	for _, e := range set.Entries() {
		if e.Partner != nil {
			fd, bd := len(e.Spec.Term), len(e.Partner.Term)
			f.SearchTerms = append(f.SearchTerms, Entry{
				Position:    "FB",
				FrontTerm:   e.Spec.Term,
				FrontDigits: &fd,
				BackTerm:    e.Partner.Term,
				BackDigits:  &bd,
				ExcludeLast: e.Partner.ExcludeLast,
			})
			continue
		}
		d := len(e.Spec.Term)
		f.SearchTerms = append(f.SearchTerms, Entry{
			Position:    e.Spec.Position.Code(),
			Term:        e.Spec.Term,
			Digits:      &d,
			ExcludeLast: e.Spec.ExcludeLast,
		})
	}
	return f
}

// WriteFile saves a set as an indented JSON search terms file.
func WriteFile(path string, set *pattern.Set) error {
	data, err := json.MarshalIndent(FromSet(set), "", "  ")
	if err != nil {
		return fmt.Errorf("encode search terms: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write search terms: %w", err)
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}
