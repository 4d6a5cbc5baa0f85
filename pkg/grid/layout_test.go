package grid

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/albumgrid/pkg/errors"
)

func TestLayoutJSON(t *testing.T) {
	l := Default().Compute(items(0.6, 1, 1, 1.5, 0.7, 1.2))

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(l) {
		t.Error("layout changed across a JSON round trip")
	}
	if back.Plan().Kind != PlanSearch {
		t.Errorf("plan kind = %v, want search", back.Plan().Kind)
	}
	if _, ok := back.Position("d"); !ok {
		t.Error("position index not rebuilt after Unmarshal")
	}
	if !reflect.DeepEqual(back.Plan(), l.Plan()) {
		t.Errorf("plan changed across a JSON round trip:\n got %+v\nwant %+v", back.Plan(), l.Plan())
	}
	if got := back.Plan().Stats.Proportions(); got != "nqqwnq" {
		t.Errorf("decoded stats proportions = %q", got)
	}
}

func TestLayoutJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Default().Compute(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := string(data); got != `{"width":0,"height":0,"plan":{"kind":0},"positions":[]}` {
		t.Errorf("Marshal = %s", got)
	}
}

func TestLayoutUnmarshalInvalid(t *testing.T) {
	var l Layout
	if err := json.Unmarshal([]byte(`{"height":-1}`), &l); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestLayoutGridSize(t *testing.T) {
	tests := []struct {
		ratios     []float64
		rows, cols int
	}{
		{[]float64{1}, 1, 1},
		{[]float64{1.5, 1.5}, 2, 1},
		{[]float64{1, 1}, 1, 2},
		{[]float64{0.6, 1, 1}, 2, 2},
		{[]float64{1.5, 1, 1, 1}, 2, 3},
		{[]float64{1, 1, 1, 1, 1}, 2, 3},
	}
	for _, tt := range tests {
		l := Default().Compute(items(tt.ratios...))
		if l.Rows() != tt.rows || l.Columns() != tt.cols {
			t.Errorf("%v: grid %dx%d, want %dx%d", tt.ratios, l.Rows(), l.Columns(), tt.rows, tt.cols)
		}
	}
}

func TestVerifyDetectsBrokenRows(t *testing.T) {
	p := DefaultParams()
	l := Default().Compute(items(1, 1))

	positions := l.Positions()
	positions[1].PW -= 10
	broken := newLayout(l.Width, l.Height, l.Plan(), positions)

	err := p.Verify(broken)
	if err == nil {
		t.Fatal("expected an error for a short row")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestVerifyDetectsMissingFlags(t *testing.T) {
	l := Default().Compute(items(1, 1, 1, 1, 1))
	positions := l.Positions()
	positions[0].Flags &^= FlagTop
	if err := DefaultParams().Verify(newLayout(l.Width, l.Height, l.Plan(), positions)); err == nil {
		t.Error("expected an error for a column without a top tile")
	}
}

func TestFlagsString(t *testing.T) {
	tests := []struct {
		f    Flags
		want string
	}{
		{0, "-"},
		{FlagAll, "TBLR"},
		{FlagTop | FlagRight, "TR"},
		{FlagBottom | FlagLeft, "BL"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Flags(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}
