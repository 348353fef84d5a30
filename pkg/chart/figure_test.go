package chart

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAddPreservesOrder(t *testing.T) {
	f := New()
	f.AddShapes(
		Shape{Type: "rect", X0: 1},
		Shape{Type: "rect", X0: 2},
	)
	f.AddShapes(Shape{Type: "rect", X0: 3})

	if len(f.Layout.Shapes) != 3 {
		t.Fatalf("shapes = %d, want 3", len(f.Layout.Shapes))
	}
	for i, s := range f.Layout.Shapes {
		if s.X0 != float64(i+1) {
			t.Errorf("shape %d X0 = %v, want %v", i, s.X0, i+1)
		}
	}

	f.AddAnnotations(Annotation{Text: "a"}, Annotation{Text: "b"})
	if got := len(f.Layout.Annotations); got != 2 {
		t.Fatalf("annotations = %d, want 2", got)
	}
	if f.Layout.Annotations[0].Text != "a" || f.Layout.Annotations[1].Text != "b" {
		t.Error("annotation order not preserved")
	}
}

func TestUpdateLayout(t *testing.T) {
	f := New().UpdateLayout(
		WithTemplate("plotly_white"),
		WithTitle("Periodic Table"),
		WithSize(1200, 800),
		WithFontSize(12),
		WithXAxis(Axis{Range: []float64{0.5, 18.5}, Side: "top"}),
		WithYAxis(Axis{Range: []float64{10.0, 0.5}, Title: "Period"}),
	)

	l := f.Layout
	if l.Template != "plotly_white" || l.Title != "Periodic Table" {
		t.Errorf("template/title = %q/%q", l.Template, l.Title)
	}
	if l.Width != 1200 || l.Height != 800 {
		t.Errorf("size = %dx%d, want 1200x800", l.Width, l.Height)
	}
	if l.Font.Size != 12 {
		t.Errorf("font size = %v, want 12", l.Font.Size)
	}
	if l.XAxis.Side != "top" || l.YAxis.Title != "Period" {
		t.Error("axis options not applied")
	}
}

func TestMarshalOmitsZeroFonts(t *testing.T) {
	f := New()
	f.AddAnnotations(Annotation{Text: "H"})
	f.AddTrace(ScatterTrace{Type: "scatter"})

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range []string{`"font"`, `"textfont"`, `"marker"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("zero-value %s should be omitted: %s", key, data)
		}
	}

	f.Layout.Annotations[0].Font = Font{Size: 16}
	data, err = json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"font"`) {
		t.Error("set font should be serialized")
	}
}

func TestAxisInverted(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		want bool
	}{
		{"descending", Axis{Range: []float64{10.0, 0.5}}, true},
		{"ascending", Axis{Range: []float64{0.5, 18.5}}, false},
		{"auto range", Axis{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.axis.Inverted(); got != tt.want {
				t.Errorf("Inverted() = %v, want %v", got, tt.want)
			}
		})
	}
}
