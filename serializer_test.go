package metrics

import (
	"strings"
	"testing"
)

func TestWriteTextCounter(t *testing.T) {
	f, _ := NewCounterFamily("steps_total", nil, "")
	f.MustWith().Add(3)

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	expected := "# TYPE steps_total counter\nsteps_total 3.000000\n\n"
	if got := sb.String(); got != expected {
		t.Fatalf("unexpected output;\ngot\n%q\nwant\n%q", got, expected)
	}
}

func TestWriteTextHelp(t *testing.T) {
	f, _ := NewGaugeFamily("help_gauge", nil, "Current value.")
	f.MustWith().Set(1.5)

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	expected := "# HELP help_gauge Current value.\n" +
		"# TYPE help_gauge gauge\n" +
		"help_gauge 1.500000\n\n"
	if got := sb.String(); got != expected {
		t.Fatalf("unexpected output;\ngot\n%q\nwant\n%q", got, expected)
	}
}

func TestWriteTextLabels(t *testing.T) {
	f, _ := NewCounterFamily("labeled_total", []string{"method", "uri"}, "")
	f.MustWith("GET", "/foo").Inc()

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	expectedLine := `labeled_total{method="GET",uri="/foo"} 1.000000` + "\n"
	if got := sb.String(); !strings.Contains(got, expectedLine) {
		t.Fatalf("missing %q in %q", expectedLine, got)
	}
}

func TestWriteTextVerbatimLabelValues(t *testing.T) {
	f, _ := NewCounterFamily("verbatim_total", []string{"raw"}, "")
	f.MustWith(`say "hi"` + "\\n").Inc()

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	// Label values pass through unescaped.
	expectedLine := `verbatim_total{raw="say "hi"\n"} 1.000000` + "\n"
	if got := sb.String(); !strings.Contains(got, expectedLine) {
		t.Fatalf("missing %q in %q", expectedLine, got)
	}
}

func TestWriteTextHistogram(t *testing.T) {
	f, _ := NewHistogramFamily("duration_seconds", nil, []float64{0.5, 1}, "")
	h := f.MustWith()
	h.Observe(0.25)
	h.Observe(0.75)
	h.Observe(2)

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	expected := "# TYPE duration_seconds histogram\n" +
		`duration_seconds_bucket{le="0.5"} 1` + "\n" +
		`duration_seconds_bucket{le="1"} 2` + "\n" +
		`duration_seconds_bucket{le="+Inf"} 3` + "\n" +
		"duration_seconds_sum 3.000000\n" +
		"duration_seconds_count 3\n\n"
	if got := sb.String(); got != expected {
		t.Fatalf("unexpected output;\ngot\n%q\nwant\n%q", got, expected)
	}
}

func TestWriteTextHistogramLabels(t *testing.T) {
	f, _ := NewHistogramFamily("labeled_duration_seconds", []string{"path"}, []float64{1}, "")
	f.MustWith("/foo").Observe(0.5)

	var sb strings.Builder
	WriteText(&sb, f.Collect())
	got := sb.String()
	for _, expectedLine := range []string{
		`labeled_duration_seconds_bucket{path="/foo",le="1"} 1` + "\n",
		`labeled_duration_seconds_bucket{path="/foo",le="+Inf"} 1` + "\n",
		`labeled_duration_seconds_sum{path="/foo"} 0.500000` + "\n",
		`labeled_duration_seconds_count{path="/foo"} 1` + "\n",
	} {
		if !strings.Contains(got, expectedLine) {
			t.Fatalf("missing %q in %q", expectedLine, got)
		}
	}
}

func TestWriteTextMultipleFamilies(t *testing.T) {
	cf, _ := NewCounterFamily("multi_a_total", nil, "")
	gf, _ := NewGaugeFamily("multi_b", nil, "")
	cf.MustWith().Inc()
	gf.MustWith().Set(2)

	var sb strings.Builder
	WriteText(&sb, append(cf.Collect(), gf.Collect()...))
	expected := "# TYPE multi_a_total counter\n" +
		"multi_a_total 1.000000\n\n" +
		"# TYPE multi_b gauge\n" +
		"multi_b 2.000000\n\n"
	if got := sb.String(); got != expected {
		t.Fatalf("unexpected output;\ngot\n%q\nwant\n%q", got, expected)
	}
}

func TestFormatSampleValue(t *testing.T) {
	f := func(familyType, name string, value float64, want string) {
		t.Helper()
		got := formatSampleValue(familyType, Sample{Name: name, Value: value})
		if got != want {
			t.Fatalf("unexpected rendering for %s %s %v; got %q; want %q", familyType, name, value, got, want)
		}
	}
	f("counter", "foo_total", 3, "3.000000")
	f("gauge", "foo", -1.25, "-1.250000")
	f("histogram", "foo_bucket", 7, "7")
	f("histogram", "foo_count", 7, "7")
	f("histogram", "foo_sum", 7, "7.000000")
	f("summary", "foo_count", 7, "7")
	f("summary", "foo_sum", 7, "7.000000")
	f("summary", "foo", 0.42, "0.420000")
}
