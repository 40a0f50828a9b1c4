package shutter

import "math"

// TimeEpsilon is the tolerance, in seconds, for treating two sample times as
// the same time. Cache formats store times with enough round-off that a sample
// meant to sit exactly on a shutter boundary can land a hair to either side.
const TimeEpsilon = 1e-4

// nearlyEqual reports whether a and b differ by less than TimeEpsilon.
func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < TimeEpsilon
}

// Window is the time interval a render request covers. All fields are
// absolute cache times in seconds except Frame and FPS.
//
// OpenTime <= CloseTime is not enforced; an inverted window simply selects no
// interior samples.
type Window struct {
	Frame     float64
	FPS       float64
	FrameTime float64
	OpenTime  float64
	CloseTime float64
}

// NewWindow derives a Window from a frame number, a frame rate and shutter
// open/close offsets expressed in frames relative to frame.
func NewWindow(frame, fps, shutterOpen, shutterClose float64) Window {
	return Window{
		Frame:     frame,
		FPS:       fps,
		FrameTime: frame / fps,
		OpenTime:  (frame + shutterOpen) / fps,
		CloseTime: (frame + shutterClose) / fps,
	}
}

// Static reports whether the shutter is closed to a single instant.
func (w Window) Static() bool {
	return nearlyEqual(w.OpenTime, w.CloseTime)
}

// RelativeTime converts an absolute sample time into frames relative to the
// window's frame, the unit renderers expect in motion blocks. Values within
// TimeEpsilon of zero are snapped to exactly zero.
func (w Window) RelativeTime(t float64) float64 {
	rel := (t - w.FrameTime) * w.FPS
	if math.Abs(rel) < TimeEpsilon {
		return 0
	}
	return rel
}
