package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
)

// WriteLayout encodes a single layout as indented JSON.
func WriteLayout(l grid.Layout, w io.Writer) error {
	return writeJSON(l, w)
}

// WriteGroups encodes groups as indented JSON: {"groups": [...]}.
func WriteGroups(groups []album.Group, w io.Writer) error {
	if groups == nil {
		groups = []album.Group{}
	}
	return writeJSON(struct {
		Groups []album.Group `json:"groups"`
	}{groups}, w)
}

// WriteItems encodes items as an indented JSON item document that
// [ReadItems] reads back.
func WriteItems(items []media.Item, w io.Writer) error {
	doc := document{Items: make([]item, len(items))}
	for i, it := range items {
		doc.Items[i] = item{ID: it.ID, AspectRatio: it.AspectRatio, Crop: it.Crop}
	}
	return writeJSON(doc, w)
}

// ExportGroups writes groups to a JSON file at path.
// This is a convenience wrapper around [WriteGroups] for file-based output.
func ExportGroups(groups []album.Group, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGroups(groups, f)
}

// ExportItems writes items to a JSON file at path.
func ExportItems(items []media.Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteItems(items, f)
}

// ExportLayout writes a layout to a JSON file at path.
func ExportLayout(l grid.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
