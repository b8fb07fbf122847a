package stats

import (
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	// 30 input chars in 60s: (30/5) / 1 min = 6 WPM.
	wpm, cpm, acc := Metrics(24, 30, 30, 60000)
	if math.Abs(wpm-6.0) > 1e-9 {
		t.Fatalf("expected 6 WPM, got %v", wpm)
	}
	if math.Abs(cpm-30.0) > 1e-9 {
		t.Fatalf("expected 30 CPM, got %v", cpm)
	}
	if math.Abs(acc-0.8) > 1e-9 {
		t.Fatalf("expected 0.8 accuracy, got %v", acc)
	}
}

func TestMetricsZeroDuration(t *testing.T) {
	wpm, cpm, acc := Metrics(3, 3, 10, 0)
	if wpm != 0 || cpm != 0 {
		t.Fatalf("expected zero speed for zero duration, got %v / %v", wpm, cpm)
	}
	if math.Abs(acc-0.3) > 1e-9 {
		t.Fatalf("expected accuracy independent of duration, got %v", acc)
	}
}

func TestMetricsZeroTarget(t *testing.T) {
	wpm, _, acc := Metrics(0, 0, 0, 1000)
	if wpm != 0 || acc != 0 {
		t.Fatalf("expected zero metrics, got wpm=%v acc=%v", wpm, acc)
	}
}

func TestMovingAverageWindow(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestMovingAverageIdentity(t *testing.T) {
	values := []float64{3, 1, 4}
	out := MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("expected identity for window 1, got %v", out)
		}
	}
}

func TestSparklineLengthAndRange(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out[0] != sparkChars[0] {
		t.Fatalf("expected lowest char first, got %q", out)
	}
	if out[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected highest char last, got %q", out)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	out := Sparkline([]float64{2, 2, 2, 2})
	if len(out) != 4 {
		t.Fatalf("expected 4 chars, got %q", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			t.Fatalf("expected flat sparkline, got %q", out)
		}
	}
}

func TestSparklineEmpty(t *testing.T) {
	if out := Sparkline(nil); out != "" {
		t.Fatalf("expected empty sparkline, got %q", out)
	}
}
