package shutter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxTimes = cmpopts.EquateApprox(0, epsilon)

// --- SampleTimes ---

func TestSampleTimesInsertKeepsOrder(t *testing.T) {
	var s SampleTimes
	for _, v := range []float64{3, 1, 2, 1, 0, 3} {
		s.Insert(v)
	}
	if diff := cmp.Diff(SampleTimes{0, 1, 2, 3}, s); diff != "" {
		t.Errorf("Insert mismatch (-want +got):\n%s", diff)
	}
	if !s.Contains(2) || s.Contains(2.5) {
		t.Error("Contains gave wrong answer")
	}
	if s.First() != 0 || s.Last() != 3 {
		t.Errorf("First/Last = %v/%v, want 0/3", s.First(), s.Last())
	}
}

func TestSampleTimesUnion(t *testing.T) {
	a := SampleTimes{0, 1, 3}
	b := SampleTimes{1, 2, 4}
	if diff := cmp.Diff(SampleTimes{0, 1, 2, 3, 4}, a.Union(b)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(SampleTimes{1, 2}, SampleTimes(nil).Union(SampleTimes{1, 2})); diff != "" {
		t.Errorf("Union with nil mismatch (-want +got):\n%s", diff)
	}
}

// --- SelectSampleTimes ---

func TestSelectSampleTimesWorkedScenario(t *testing.T) {
	ts := UniformSampling{Start: 0, Step: 1}
	w := NewWindow(1, 1, -0.5, 0.5)
	got := SelectSampleTimes(ts, 4, w, nil)
	if diff := cmp.Diff(SampleTimes{0, 1, 2}, got, approxTimes); diff != "" {
		t.Errorf("SelectSampleTimes mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectSampleTimesStatic(t *testing.T) {
	ts := UniformSampling{Start: 0, Step: 1}
	for _, n := range []int{-1, 0, 1} {
		for _, w := range []Window{
			NewWindow(1, 1, -0.5, 0.5),
			NewWindow(240, 24, 0, 0),
			NewWindow(-7, 30, 1, -1),
		} {
			got := SelectSampleTimes(ts, n, w, SampleTimes{3, 4})
			if diff := cmp.Diff(SampleTimes{0}, got); diff != "" {
				t.Errorf("n=%d window %+v (-want +got):\n%s", n, w, diff)
			}
		}
	}
}

func TestSelectSampleTimes(t *testing.T) {
	uniform := UniformSampling{Start: 0, Step: 1}
	tests := []struct {
		name      string
		ts        TimeSampling
		n         int
		w         Window
		inherited SampleTimes
		want      SampleTimes
	}{
		{
			name: "window on samples",
			ts:   uniform, n: 10,
			w:    NewWindow(5, 1, -1, 1),
			want: SampleTimes{4, 5, 6},
		},
		{
			name: "close within epsilon of last interior sample",
			ts:   uniform, n: 4,
			w:    Window{FrameTime: 1, OpenTime: 0.5, CloseTime: 2.00005, FPS: 1},
			want: SampleTimes{0, 1, 2},
		},
		{
			name: "open a hair before a sample advances the floor",
			ts:   uniform, n: 4,
			w:    Window{FrameTime: 1.5, OpenTime: 0.99995, CloseTime: 2, FPS: 1},
			want: SampleTimes{1, 2},
		},
		{
			name: "window between two sparse samples",
			ts:   UniformSampling{Start: 0, Step: 10}, n: 2,
			w:    NewWindow(5, 1, -1, 1),
			want: SampleTimes{0, 10},
		},
		{
			name: "inverted window falls back to frame time",
			ts:   uniform, n: 4,
			w:    NewWindow(1.5, 1, 1, -1),
			want: SampleTimes{1.5},
		},
		{
			name: "closed shutter on a sample falls back to frame time",
			ts:   uniform, n: 4,
			w:    NewWindow(2, 1, 0, 0),
			want: SampleTimes{2},
		},
		{
			name: "window after last sample",
			ts:   uniform, n: 4,
			w:    NewWindow(10, 1, -0.5, 0.5),
			want: SampleTimes{10},
		},
		{
			name: "window before first sample",
			ts:   UniformSampling{Start: 5, Step: 1}, n: 4,
			w:    NewWindow(1, 1, -0.5, 0.5),
			want: SampleTimes{1},
		},
		{
			name:      "inherited bounds widen the window",
			ts:        uniform, n: 10,
			w:         NewWindow(5, 1, -0.5, 0.5),
			inherited: SampleTimes{3, 5, 7},
			want:      SampleTimes{3, 4, 5, 6, 7},
		},
		{
			name:      "single inherited time does not widen",
			ts:        uniform, n: 10,
			w:         NewWindow(5, 1, -0.5, 0.5),
			inherited: SampleTimes{0},
			want:      SampleTimes{4, 5, 6},
		},
		{
			name: "acyclic sampling",
			ts:   AcyclicSampling{Times: []float64{0, 0.5, 2, 3.5}}, n: 4,
			w:    NewWindow(1, 1, -0.25, 0.25),
			want: SampleTimes{0.5, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectSampleTimes(tt.ts, tt.n, tt.w, tt.inherited)
			if diff := cmp.Diff(tt.want, got, approxTimes); diff != "" {
				t.Errorf("SelectSampleTimes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectSampleTimesNeverEmpty(t *testing.T) {
	samplings := []TimeSampling{
		UniformSampling{Start: 0, Step: 1},
		UniformSampling{Start: 0.3, Step: 0.1},
		CyclicSampling{TimePerCycle: 1, Times: []float64{0, 0.1, 0.9}},
		AcyclicSampling{Times: []float64{-2, 0, 0.001, 4, 4.00001, 9}},
	}
	edges := []float64{-20, -1.5, -0.01, 0, 0.00005, 0.3, 1, 2.5, 4, 8.99999, 9, 30}
	for si, ts := range samplings {
		for _, open := range edges {
			for _, closeT := range edges {
				w := Window{FrameTime: (open + closeT) / 2, OpenTime: open, CloseTime: closeT, FPS: 24}
				got := SelectSampleTimes(ts, 6, w, nil)
				if len(got) == 0 {
					t.Fatalf("sampling %d open %v close %v: empty result", si, open, closeT)
				}
				for i := 1; i < len(got); i++ {
					if !(got[i] > got[i-1]) {
						t.Fatalf("sampling %d open %v close %v: not ascending: %v", si, open, closeT, got)
					}
				}
			}
		}
	}
}

func TestSelectSampleTimesCoversWindow(t *testing.T) {
	ts := UniformSampling{Start: 0, Step: 1.0 / 24}
	for frame := 1.0; frame < 40; frame += 0.5 {
		w := NewWindow(frame, 24, -0.35, 0.35)
		got := SelectSampleTimes(ts, 48, w, nil)
		if len(got) < 2 {
			continue
		}
		if got.First() > w.OpenTime+TimeEpsilon {
			t.Errorf("frame %v: first time %v starts after open %v", frame, got.First(), w.OpenTime)
		}
		if got.Last() < math.Min(w.CloseTime, ts.SampleTime(47))-TimeEpsilon {
			t.Errorf("frame %v: last time %v ends before close %v", frame, got.Last(), w.CloseTime)
		}
	}
}

func TestSelectSampleTimesCloseAnchorTolerance(t *testing.T) {
	ts := AcyclicSampling{Times: []float64{0, 1, 2}}
	tests := []struct {
		name      string
		closeTime float64
		want      SampleTimes
	}{
		{"gap within epsilon", 1 + TimeEpsilon/2, SampleTimes{0, 1}},
		{"gap past epsilon", 1 + 2*TimeEpsilon, SampleTimes{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window{FrameTime: 0.5, OpenTime: 0, CloseTime: tt.closeTime, FPS: 1}
			got := SelectSampleTimes(ts, 3, w, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SelectSampleTimes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
