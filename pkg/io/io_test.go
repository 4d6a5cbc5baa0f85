package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
	"github.com/matzehuels/albumgrid/pkg/media"
)

func TestReadItemsFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json object", FormatJSON, `{"items": [{"id": "a", "aspect_ratio": 1.5}, {"id": "b", "width": 1080, "height": 1350}]}`},
		{"json list", FormatJSON, `[{"id": "a", "aspect_ratio": 1.5}, {"id": "b", "width": 1080, "height": 1350}]`},
		{"yaml object", FormatYAML, "items:\n  - id: a\n    aspect_ratio: 1.5\n  - id: b\n    width: 1080\n    height: 1350\n"},
		{"yaml list", FormatYAML, "- id: a\n  aspect_ratio: 1.5\n- id: b\n  width: 1080\n  height: 1350\n"},
		{"toml", FormatTOML, "[[items]]\nid = \"a\"\naspect_ratio = 1.5\n\n[[items]]\nid = \"b\"\nwidth = 1080\nheight = 1350\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ReadItems(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadItems: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("got %d items, want 2", len(items))
			}
			if items[0].ID != "a" || items[0].AspectRatio != 1.5 {
				t.Errorf("items[0] = %+v", items[0])
			}
			if items[1].ID != "b" || items[1].AspectRatio != 1080.0/1350.0 {
				t.Errorf("items[1] = %+v", items[1])
			}
		})
	}
}

func TestReadItemsCropAndMissingID(t *testing.T) {
	input := `{"items": [{"aspect_ratio": 2, "crop": {"left": 0, "top": 0, "right": 0.5, "bottom": 1}}]}`
	items, err := ReadItems(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("ReadItems: %v", err)
	}
	if items[0].ID == "" {
		t.Error("missing ids should be generated")
	}
	if got := items[0].Ratio(); got != 1 {
		t.Errorf("cropped ratio = %v, want 1", got)
	}
}

func TestReadItemsErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"items": [`, errors.ErrCodeInvalidInput},
		{"malformed yaml", FormatYAML, "items: [\n", errors.ErrCodeInvalidInput},
		{"malformed toml", FormatTOML, "[[items]\n", errors.ErrCodeInvalidInput},
		{"duplicate id", FormatJSON, `[{"id": "a"}, {"id": "a"}]`, errors.ErrCodeInvalidInput},
		{"unknown format", Format("xml"), `<items/>`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadItems(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"items.json", FormatJSON, false},
		{"ITEMS.YML", FormatYAML, false},
		{"a/b/items.yaml", FormatYAML, false},
		{"items.toml", FormatTOML, false},
		{"items.csv", "", true},
		{"items", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestImportItemsMissingFile(t *testing.T) {
	_, err := ImportItems(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	in := []media.Item{
		media.New("a", 1.5),
		media.New("b", 0.75).WithCrop(media.Crop{Right: 1, Bottom: 0.5, Orientation: 90}),
	}
	if err := ExportItems(in, path); err != nil {
		t.Fatalf("ExportItems: %v", err)
	}
	out, err := ImportItems(path)
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if len(out) != 2 || out[1].Crop == nil || *out[1].Crop != *in[1].Crop {
		t.Errorf("round trip lost data: %+v", out)
	}
}

func TestWriteGroups(t *testing.T) {
	p, err := album.FromItems([]media.Item{media.New("a", 1), media.New("b", 1)})
	if err != nil {
		t.Fatalf("FromItems: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteGroups(p.Groups(), &buf); err != nil {
		t.Fatalf("WriteGroups: %v", err)
	}

	var doc struct {
		Groups []album.Group `json:"groups"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(doc.Groups) != 1 || doc.Groups[0].Layout.Len() != 2 {
		t.Errorf("decoded groups = %+v", doc.Groups)
	}
}

func TestWriteGroupsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGroups(nil, &buf); err != nil {
		t.Fatalf("WriteGroups: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{\n  \"groups\": []\n}" {
		t.Errorf("WriteGroups(nil) = %s", got)
	}
}

func TestExportGroupsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.json")
	if err := ExportGroups(nil, path); err != nil {
		t.Fatalf("ExportGroups: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	l := grid.Default().Compute([]media.Item{media.New("a", 1.5)})
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	if !strings.Contains(buf.String(), `"width": 1000`) {
		t.Errorf("unexpected layout JSON: %s", buf.String())
	}
}

func TestImportExampleFiles(t *testing.T) {
	tests := []struct {
		file string
		want int
	}{
		{"holiday.json", 12},
		{"trio.yaml", 3},
		{"five.toml", 5},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			items, err := ImportItems(filepath.Join("..", "..", "examples", "items", tt.file))
			if err != nil {
				t.Fatalf("ImportItems: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d items, want %d", len(items), tt.want)
			}
		})
	}
}
