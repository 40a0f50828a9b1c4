package shutter

import (
	"math"
	"sort"
)

// SampleTimes is an ascending set of distinct sample times.
type SampleTimes []float64

// Insert adds t, keeping the set sorted. Exact duplicates are ignored.
func (s *SampleTimes) Insert(t float64) {
	times := *s
	i := sort.SearchFloat64s(times, t)
	if i < len(times) && times[i] == t {
		return
	}
	times = append(times, 0)
	copy(times[i+1:], times[i:])
	times[i] = t
	*s = times
}

// Contains reports whether t is in the set.
func (s SampleTimes) Contains(t float64) bool {
	i := sort.SearchFloat64s(s, t)
	return i < len(s) && s[i] == t
}

// Len returns the number of times in the set.
func (s SampleTimes) Len() int { return len(s) }

// First returns the earliest time, or 0 for an empty set.
func (s SampleTimes) First() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// Last returns the latest time, or 0 for an empty set.
func (s SampleTimes) Last() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Union returns the sorted union of s and other.
func (s SampleTimes) Union(other SampleTimes) SampleTimes {
	out := make(SampleTimes, 0, len(s)+len(other))
	i, j := 0, 0
	for i < len(s) || j < len(other) {
		switch {
		case j == len(other) || (i < len(s) && s[i] < other[j]):
			out = append(out, s[i])
			i++
		case i == len(s) || other[j] < s[i]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	return out
}

// SelectSampleTimes returns the stored sample times an attribute must be read
// at to cover the shutter window w.
//
// Attributes with fewer than two samples are static and resolve to {0}.
// Otherwise the window is widened to cover inherited, the parent's resolved
// times, when it holds two or more entries, so a child never has to
// extrapolate where its parent has samples. Every stored time from the floor
// of the open time up to, but excluding, the ceil of the close time is
// selected, plus the ceil time itself when the last selected time falls short
// of the close time. If nothing lies inside the window, the result is the
// frame time alone. The result is never empty.
func SelectSampleTimes(ts TimeSampling, numSamples int, w Window, inherited SampleTimes) SampleTimes {
	if numSamples < 2 {
		return SampleTimes{0}
	}

	openTime, closeTime := w.OpenTime, w.CloseTime
	if len(inherited) >= 2 {
		openTime = math.Min(openTime, inherited.First())
		closeTime = math.Max(closeTime, inherited.Last())
	}

	floorIdx, floorTime := ts.FloorIndex(openTime, numSamples)
	ceilIdx, ceilTime := ts.CeilIndex(closeTime, numSamples)

	// A sample meant to sit on the open time may be stored just before it.
	if floorIdx < ceilIdx && floorTime < openTime {
		if next := ts.SampleTime(floorIdx + 1); nearlyEqual(next, openTime) {
			floorIdx++
		}
	}

	var times SampleTimes
	for i := floorIdx; i < ceilIdx; i++ {
		times.Insert(ts.SampleTime(i))
	}

	if len(times) == 0 {
		return SampleTimes{w.FrameTime}
	}

	// Anchor the right side of the window so the close time can be
	// interpolated rather than clamped. A gap of exactly TimeEpsilon is
	// still treated as covered.
	if closeTime-times.Last() > TimeEpsilon {
		times.Insert(ceilTime)
	}
	return times
}
