package shutter

import "github.com/go-gl/mathgl/mgl64"

// TransformSource is the cache-reading side of a transform attribute: how it
// was sampled and the matrix stored at each index.
type TransformSource interface {
	Sampling() TimeSampling
	NumSamples() int
	Sample(index int) mgl64.Mat4
}

// Track is an in-memory TransformSource.
type Track struct {
	sampling TimeSampling
	samples  []mgl64.Mat4
}

// NewTrack returns a track holding samples stored at the times described by
// ts. A nil ts is treated as one sample per second starting at zero.
func NewTrack(ts TimeSampling, samples []mgl64.Mat4) *Track {
	if ts == nil {
		ts = UniformSampling{Step: 1}
	}
	return &Track{sampling: ts, samples: samples}
}

// StaticTrack returns a single-sample track.
func StaticTrack(m mgl64.Mat4) *Track {
	return NewTrack(nil, []mgl64.Mat4{m})
}

// Sampling implements TransformSource.
func (t *Track) Sampling() TimeSampling { return t.sampling }

// NumSamples implements TransformSource.
func (t *Track) NumSamples() int { return len(t.samples) }

// Sample implements TransformSource. Out-of-range indices clamp; an empty
// track yields the identity.
func (t *Track) Sample(index int) mgl64.Mat4 {
	if len(t.samples) == 0 {
		return mgl64.Ident4()
	}
	return t.samples[clampIndex(index, len(t.samples)-1)]
}

// ReadSamples reads src at each of times, keyed by the requested time. Each
// read uses the stored sample nearest the requested time; since times
// normally come from SelectSampleTimes they land on stored samples exactly.
// A source with fewer than two samples yields its only sample at time zero.
func ReadSamples(src TransformSource, times SampleTimes) *SampleMap {
	n := src.NumSamples()
	if n < 2 {
		m := NewSampleMap(1)
		m.Set(0, src.Sample(0))
		return m
	}
	ts := src.Sampling()
	m := NewSampleMap(len(times))
	for _, t := range times {
		idx, _ := NearIndex(ts, t, n)
		m.Set(t, src.Sample(idx))
	}
	return m
}
