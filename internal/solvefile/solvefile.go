// Package solvefile reads and writes portable solve files. The JSON layout
// {"solves":[{"time":<ms>,"timestamp":"..."}]} is the format of earlier
// releases; YAML uses the same fields.
package solvefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuicube/internal/model"
)

// Format selects the file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat parses a format name.
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format %q (use json or yaml)", v)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Entry is one solve: the time in milliseconds and when it was recorded.
type Entry struct {
	Time      int64  `json:"time" yaml:"time"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Document is the top-level file content.
type Document struct {
	Solves []Entry `json:"solves" yaml:"solves"`
}

// FromSolves converts stored solves into a document.
func FromSolves(solves []model.Solve) Document {
	doc := Document{Solves: make([]Entry, 0, len(solves))}
	for _, s := range solves {
		doc.Solves = append(doc.Solves, Entry{
			Time:      s.Duration.Milliseconds(),
			Timestamp: s.RecordedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return doc
}

// ToSolves converts the document into solves stamped with sessionID. Every
// entry must carry a non-negative time and an RFC 3339 timestamp.
func (d Document) ToSolves(sessionID string, discipline model.Discipline) ([]model.Solve, error) {
	out := make([]model.Solve, 0, len(d.Solves))
	for i, e := range d.Solves {
		if e.Time < 0 {
			return nil, fmt.Errorf("solve %d: negative time %d", i, e.Time)
		}
		at, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(e.Timestamp))
		if err != nil {
			return nil, fmt.Errorf("solve %d: invalid timestamp %q: %w", i, e.Timestamp, err)
		}
		out = append(out, model.Solve{
			SessionID:  sessionID,
			Duration:   time.Duration(e.Time) * time.Millisecond,
			RecordedAt: at,
			Discipline: discipline,
		})
	}
	return out, nil
}

// Decode reads a document in the given format.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("failed to decode json: %w", err)
		}
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

// Load reads the solve file at path, choosing the format by extension.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open solves file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f, FormatFromPath(path))
}

// Write encodes solves to w.
func Write(w io.Writer, f Format, solves []model.Solve) error {
	return Encode(w, f, FromSolves(solves))
}
