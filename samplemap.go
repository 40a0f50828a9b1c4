package shutter

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleMap is an ascending time-keyed series of affine samples. A map is
// built by one traversal step and then only read; children receive their
// parent's map by pointer and never modify it.
type SampleMap struct {
	times  SampleTimes
	values []mgl64.Mat4
}

// NewSampleMap returns an empty map with room for n samples.
func NewSampleMap(n int) *SampleMap {
	return &SampleMap{
		times:  make(SampleTimes, 0, n),
		values: make([]mgl64.Mat4, 0, n),
	}
}

// Set stores m at time t, replacing any sample already stored at exactly t.
func (s *SampleMap) Set(t float64, m mgl64.Mat4) {
	i := sort.SearchFloat64s(s.times, t)
	if i < len(s.times) && s.times[i] == t {
		s.values[i] = m
		return
	}
	s.times = append(s.times, 0)
	copy(s.times[i+1:], s.times[i:])
	s.times[i] = t
	s.values = append(s.values, mgl64.Mat4{})
	copy(s.values[i+1:], s.values[i:])
	s.values[i] = m
}

// Len returns the number of samples. A nil map has none.
func (s *SampleMap) Len() int {
	if s == nil {
		return 0
	}
	return len(s.times)
}

// Times returns the sample times. The returned slice must not be modified.
func (s *SampleMap) Times() SampleTimes {
	if s == nil {
		return nil
	}
	return s.times
}

// At returns the i-th sample in time order.
func (s *SampleMap) At(i int) (float64, mgl64.Mat4) {
	return s.times[i], s.values[i]
}

// Get returns the sample stored at exactly t.
func (s *SampleMap) Get(t float64) (mgl64.Mat4, bool) {
	if s == nil {
		return mgl64.Mat4{}, false
	}
	i := sort.SearchFloat64s(s.times, t)
	if i < len(s.times) && s.times[i] == t {
		return s.values[i], true
	}
	return mgl64.Mat4{}, false
}

// Clone returns an independent copy of s.
func (s *SampleMap) Clone() *SampleMap {
	out := NewSampleMap(s.Len())
	if s == nil {
		return out
	}
	out.times = append(out.times, s.times...)
	out.values = append(out.values, s.values...)
	return out
}

// ValueAt returns the transform at time t. A stored sample at t is returned
// as-is. Lookups before the first or after the last sample clamp to that
// sample; lookups in between interpolate the tightest bracketing pair. An
// empty or nil map yields the identity.
func (s *SampleMap) ValueAt(t float64) mgl64.Mat4 {
	n := s.Len()
	switch {
	case n == 0:
		return mgl64.Ident4()
	case n == 1:
		return s.values[0]
	}

	i := sort.SearchFloat64s(s.times, t)
	if i < n && s.times[i] == t {
		return s.values[i]
	}
	if i == 0 {
		return s.values[0]
	}
	if i == n {
		return s.values[n-1]
	}

	lTime, rTime := s.times[i-1], s.times[i]
	alpha := (t - lTime) / (rTime - lTime)
	return Interpolate(s.values[i-1], s.values[i], alpha)
}
