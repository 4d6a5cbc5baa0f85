package media

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"positive", 1.5, 1.5},
		{"zero", 0, Epsilon},
		{"negative", -2, Epsilon},
		{"nan", math.NaN(), Epsilon},
		{"+inf", math.Inf(1), Epsilon},
		{"-inf", math.Inf(-1), Epsilon},
		{"tiny", 1e-9, Epsilon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewGeneratesID(t *testing.T) {
	a := New("", 1)
	b := New("", 1)
	if a.ID == "" || b.ID == "" {
		t.Fatal("New should generate an id when none is given")
	}
	if a.ID == b.ID {
		t.Error("generated ids should differ")
	}
	if got := New("photo-1", 1).ID; got != "photo-1" {
		t.Errorf("ID = %q, want photo-1", got)
	}
}

func TestFromSize(t *testing.T) {
	it := FromSize("a", 1920, 1080)
	if math.Abs(it.Ratio()-16.0/9.0) > 1e-12 {
		t.Errorf("Ratio() = %v, want %v", it.Ratio(), 16.0/9.0)
	}
	if got := FromSize("b", 100, 0).Ratio(); got != Epsilon {
		t.Errorf("zero height ratio = %v, want %v", got, Epsilon)
	}
}

func TestCropApply(t *testing.T) {
	tests := []struct {
		name  string
		crop  Crop
		ratio float64
		want  float64
	}{
		{"full frame", Crop{Right: 1, Bottom: 1}, 1.5, 1.5},
		{"left half", Crop{Right: 0.5, Bottom: 1}, 2, 1},
		{"top half", Crop{Right: 1, Bottom: 0.5}, 1, 2},
		{"rotated", Crop{Right: 1, Bottom: 1, Orientation: 90}, 2, 0.5},
		{"rotated negative", Crop{Right: 1, Bottom: 1, Orientation: -90}, 2, 0.5},
		{"upside down", Crop{Right: 1, Bottom: 1, Orientation: 180}, 2, 2},
		{"degenerate ignored", Crop{Left: 0.5, Right: 0.5, Bottom: 1}, 1.5, 1.5},
		{"degenerate rotated", Crop{Orientation: 270}, 4, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.crop.Apply(tt.ratio); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Apply(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestItemRatioUsesCrop(t *testing.T) {
	it := New("a", 1).WithCrop(Crop{Right: 1, Bottom: 0.25})
	if got := it.Ratio(); got != 4 {
		t.Errorf("Ratio() = %v, want 4", got)
	}
	if got := it.Category(); got != Wide {
		t.Errorf("Category() = %v, want wide", got)
	}
}

func TestCloneCopiesCrop(t *testing.T) {
	it := New("a", 1).WithCrop(Crop{Right: 1, Bottom: 1})
	c := it.Clone()
	c.Crop.Right = 0.5
	if it.Crop.Right != 1 {
		t.Error("Clone should not share the crop")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		r    float64
		want Category
	}{
		{1.21, Wide},
		{1.2, Square},
		{1.0, Square},
		{0.8, Square},
		{0.79, Narrow},
		{3, Wide},
	}

	for _, tt := range tests {
		if got := Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	items := []Item{New("a", 1.5), New("b", 0.5), New("c", 1)}
	s := Summarize(items)

	if got := s.Proportions(); got != "wnq" {
		t.Errorf("Proportions() = %q, want wnq", got)
	}
	if s.Average != 1 {
		t.Errorf("Average = %v, want 1", s.Average)
	}
	if s.ForceFullSearch {
		t.Error("ForceFullSearch should be false")
	}
	if s.AllSame() {
		t.Error("AllSame should be false")
	}

	s = Summarize([]Item{New("a", 2.5), New("b", 1.5)})
	if !s.ForceFullSearch {
		t.Error("ratio above 2.0 should force the full search")
	}
	if !s.AllSame() {
		t.Error("two wide items should share a category")
	}

	if s := Summarize(nil); s.Average != 0 || len(s.Categories) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestStatsJSON(t *testing.T) {
	s := Summarize([]Item{New("a", 2.5), New("b", 0.5), New("c", 1)})
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"ratios":[2.5,0.5,1],"categories":["wide","narrow","square"],"average":1.3333333333333333,"force_full_search":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s", data)
	}

	var back Stats
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Proportions() != "wnq" || !back.ForceFullSearch || back.Average != s.Average {
		t.Errorf("round trip = %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"categories":["tall"]}`), &back); err == nil {
		t.Error("expected error for unknown category")
	}
}
