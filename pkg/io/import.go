package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/media"
)

// Format is an item file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported item file %q (want .json, .yaml, .yml or .toml)", path)
}

type document struct {
	Items []item `json:"items" yaml:"items" toml:"items"`
}

type item struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	AspectRatio float64     `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty" toml:"aspect_ratio,omitempty"`
	Width       int         `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height      int         `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Crop        *media.Crop `json:"crop,omitempty" yaml:"crop,omitempty" toml:"crop,omitempty"`
}

func (i item) toMedia() media.Item {
	var it media.Item
	if i.AspectRatio == 0 && i.Width > 0 && i.Height > 0 {
		it = media.FromSize(i.ID, i.Width, i.Height)
	} else {
		it = media.New(i.ID, i.AspectRatio)
	}
	if i.Crop != nil {
		it = it.WithCrop(*i.Crop)
	}
	return it
}

// ReadItems decodes an item list from r.
//
// ReadItems returns an INVALID_INPUT error if the input is malformed or
// repeats an id. It does not close r.
func ReadItems(r io.Reader, format Format) ([]media.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON:
		err = decodeJSON(data, &doc)
	case FormatYAML:
		err = decodeYAML(data, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(data), &doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s items", format)
	}

	items := make([]media.Item, len(doc.Items))
	seen := make(map[string]int, len(doc.Items))
	for i, raw := range doc.Items {
		it := raw.toMedia()
		if prev, dup := seen[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d repeats id %q of item %d", i, it.ID, prev)
		}
		seen[it.ID] = i
		items[i] = it
	}
	return items, nil
}

// ImportItems reads the item file at path, choosing the format from its
// extension.
func ImportItems(path string) ([]media.Item, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "item file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := ReadItems(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// decodeJSON accepts either {"items": [...]} or a bare list.
func decodeJSON(data []byte, doc *document) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &doc.Items)
	}
	return json.Unmarshal(data, doc)
}

// decodeYAML accepts either a mapping with "items" or a bare sequence.
func decodeYAML(data []byte, doc *document) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		return nil
	}
	if root := node.Content[0]; root.Kind == yaml.SequenceNode {
		return root.Decode(&doc.Items)
	}
	return node.Decode(doc)
}
