/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-openapi/strfmt"

	storeerrors "github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/storagemodels"
)

// readDocument decodes a JSON object from --data, or from --file ("-" reads stdin).
func readDocument(data, file string, stdin io.Reader) (storagemodels.Document, error) {
	var raw []byte
	switch {
	case data != "" && file != "":
		return nil, storeerrors.NewValidationError("data", "use either --data or --file")
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		raw = b
	default:
		return nil, storeerrors.NewValidationError("data", "a document is required (--data or --file)")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc storagemodels.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, storeerrors.NewValidationError("data", fmt.Sprintf("invalid JSON object: %v", err))
	}
	for k, v := range doc {
		doc[k] = normalize(v)
	}
	return doc, nil
}

// normalize turns json.Number into int64 when integral, float64 otherwise,
// so validation rules compare numbers as numbers.
func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// parseAssignments splits field=value pairs.
func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		field, value, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, storeerrors.NewValidationError("prop", fmt.Sprintf("expected field=value, got %q", p))
		}
		out[field] = value
	}
	return out, nil
}

// render rewrites created/modified stamps as ISO-8601 when --iso-times is set.
func render(doc storagemodels.Document) storagemodels.Document {
	if !isoTimes || doc == nil {
		return doc
	}
	out := doc.Clone()
	if t, ok := doc.CreatedAt(); ok {
		out[storagemodels.FieldCreated] = t.String()
	}
	if t, ok := doc.ModifiedAt(); ok {
		out[storagemodels.FieldModified] = t.String()
	}
	return out
}

func renderAll(docs []storagemodels.Document) []storagemodels.Document {
	out := make([]storagemodels.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, render(d))
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// formatTime is used by the version command for the build date when it parses.
func formatTime(s string) string {
	t, err := strfmt.ParseDateTime(s)
	if err != nil {
		return s
	}
	return t.String()
}
