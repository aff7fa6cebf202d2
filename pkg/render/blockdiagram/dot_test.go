package blockdiagram

import (
	"context"
	"strings"
	"testing"

	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/geom"
)

func cascadeSummary(t *testing.T) filter.Summary {
	t.Helper()
	d := filter.Design{Family: pole.Butterworth{}, Order: 4, Frequency: 1000, Gain: 2, R1: 10000}
	c, err := filter.NewCascade(geom.Point{}, d, filter.StageOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return c.Summary()
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(cascadeSummary(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"VIN" -> "stage1";`,
		`"stage1" -> "stage2";`,
		`"stage2" -> "VOUT" [label="butterworth, order 4"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "R1=") {
		t.Error("component values should only appear in detailed mode")
	}
}

func TestToDOTDetailed(t *testing.T) {
	sum := cascadeSummary(t)
	dot := ToDOT(sum, Options{Detailed: true})

	l := sum.Stages[0].Labels
	if !strings.Contains(dot, "R1="+l.R1) || !strings.Contains(dot, "C2="+l.C2) {
		t.Errorf("detailed DOT missing component values\n%s", dot)
	}
}

func TestToDOTSingleStage(t *testing.T) {
	s, err := filter.NewStage(geom.Point{}, filter.Params{Frequency: 1000, Gain: 1, Q: 0.7071, R1: 1000}, filter.StageOptions{})
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(s.Summary(), Options{})
	if !strings.Contains(dot, `"stage1" -> "VOUT";`) {
		t.Errorf("unexpected DOT\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(cascadeSummary(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestFitChain(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(fitChain(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" role="img" viewBox="0 0 100.00 50.00" width="100" height="50" preserveAspectRatio="xMinYMid meet"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(fitChain(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
