package shutter

import (
	"math"
	"sort"
)

// TimeSampling describes the times at which a cached attribute was stored.
// It is owned by the cache-reading layer; this package only queries it.
//
// FloorIndex returns the largest index whose time is at or before t, and
// CeilIndex the smallest index whose time is at or after t. Both clamp to
// [0, numSamples-1] and return the time stored at the chosen index.
type TimeSampling interface {
	SampleTime(index int) float64
	FloorIndex(t float64, numSamples int) (int, float64)
	CeilIndex(t float64, numSamples int) (int, float64)
}

// sampleRoundoff is the relative tolerance under which a stored time is
// considered to sit exactly on a queried time. It only absorbs arithmetic
// noise from index/time conversion; TimeEpsilon handles cache round-off.
const sampleRoundoff = 1e-9

func sameTime(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= sampleRoundoff*scale
}

// --- Uniform ---

// UniformSampling stores one sample every Step seconds starting at Start.
type UniformSampling struct {
	Start float64
	Step  float64
}

// SampleTime returns the time of sample index.
func (u UniformSampling) SampleTime(index int) float64 {
	return u.Start + float64(index)*u.Step
}

// FloorIndex implements TimeSampling.
func (u UniformSampling) FloorIndex(t float64, numSamples int) (int, float64) {
	if numSamples <= 1 || u.Step <= 0 || t <= u.Start {
		return 0, u.Start
	}
	last := numSamples - 1
	if t >= u.SampleTime(last) {
		return last, u.SampleTime(last)
	}
	idx := clampIndex(int(math.Floor((t-u.Start)/u.Step)), last)
	if idx < last && sameTime(u.SampleTime(idx+1), t) {
		idx++
	} else if idx > 0 && u.SampleTime(idx) > t && !sameTime(u.SampleTime(idx), t) {
		idx--
	}
	return idx, u.SampleTime(idx)
}

// CeilIndex implements TimeSampling.
func (u UniformSampling) CeilIndex(t float64, numSamples int) (int, float64) {
	if numSamples <= 1 || u.Step <= 0 || t <= u.Start {
		return 0, u.Start
	}
	last := numSamples - 1
	if t >= u.SampleTime(last) {
		return last, u.SampleTime(last)
	}
	idx := clampIndex(int(math.Ceil((t-u.Start)/u.Step)), last)
	if idx > 0 && sameTime(u.SampleTime(idx-1), t) {
		idx--
	} else if idx < last && u.SampleTime(idx) < t && !sameTime(u.SampleTime(idx), t) {
		idx++
	}
	return idx, u.SampleTime(idx)
}

// --- Cyclic ---

// CyclicSampling repeats the offsets in Times every TimePerCycle seconds.
// Times must be ascending and span less than TimePerCycle.
type CyclicSampling struct {
	TimePerCycle float64
	Times        []float64
}

// SampleTime returns the time of sample index.
func (c CyclicSampling) SampleTime(index int) float64 {
	k := len(c.Times)
	if k == 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	cycle := index / k
	return float64(cycle)*c.TimePerCycle + c.Times[index%k]
}

// FloorIndex implements TimeSampling.
func (c CyclicSampling) FloorIndex(t float64, numSamples int) (int, float64) {
	return searchFloor(c, t, numSamples)
}

// CeilIndex implements TimeSampling.
func (c CyclicSampling) CeilIndex(t float64, numSamples int) (int, float64) {
	return searchCeil(c, t, numSamples)
}

// --- Acyclic ---

// AcyclicSampling lists every stored time explicitly, ascending.
type AcyclicSampling struct {
	Times []float64
}

// SampleTime returns the time of sample index, clamped to the stored range.
func (a AcyclicSampling) SampleTime(index int) float64 {
	if len(a.Times) == 0 {
		return 0
	}
	return a.Times[clampIndex(index, len(a.Times)-1)]
}

// FloorIndex implements TimeSampling.
func (a AcyclicSampling) FloorIndex(t float64, numSamples int) (int, float64) {
	return searchFloor(a, t, min(numSamples, len(a.Times)))
}

// CeilIndex implements TimeSampling.
func (a AcyclicSampling) CeilIndex(t float64, numSamples int) (int, float64) {
	return searchCeil(a, t, min(numSamples, len(a.Times)))
}

// NewSampling returns the tightest TimeSampling for an ascending list of
// stored times: uniform when the spacing is constant, acyclic otherwise.
func NewSampling(times []float64) TimeSampling {
	switch len(times) {
	case 0:
		return UniformSampling{Step: 1}
	case 1:
		return UniformSampling{Start: times[0], Step: 1}
	}
	step := times[1] - times[0]
	for i := 2; i < len(times); i++ {
		if !sameTime(times[i]-times[i-1], step) {
			return AcyclicSampling{Times: append([]float64(nil), times...)}
		}
	}
	return UniformSampling{Start: times[0], Step: step}
}

// NearIndex returns whichever of the floor and ceil indices of t is closer to
// t, preferring the floor on a tie.
func NearIndex(ts TimeSampling, t float64, numSamples int) (int, float64) {
	fi, ft := ts.FloorIndex(t, numSamples)
	ci, ct := ts.CeilIndex(t, numSamples)
	if math.Abs(t-ft) <= math.Abs(ct-t) {
		return fi, ft
	}
	return ci, ct
}

// searchFloor binary-searches any ascending sampling for the floor of t.
func searchFloor(ts TimeSampling, t float64, n int) (int, float64) {
	if n <= 1 {
		return 0, ts.SampleTime(0)
	}
	i := sort.Search(n, func(i int) bool {
		st := ts.SampleTime(i)
		return st > t && !sameTime(st, t)
	}) - 1
	i = clampIndex(i, n-1)
	return i, ts.SampleTime(i)
}

// searchCeil binary-searches any ascending sampling for the ceil of t.
func searchCeil(ts TimeSampling, t float64, n int) (int, float64) {
	if n <= 1 {
		return 0, ts.SampleTime(0)
	}
	i := sort.Search(n, func(i int) bool {
		st := ts.SampleTime(i)
		return st >= t || sameTime(st, t)
	})
	i = clampIndex(i, n-1)
	return i, ts.SampleTime(i)
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
