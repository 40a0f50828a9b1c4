package shutter

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TRS is a transform given as translation, Euler rotation in radians (applied
// X, then Y, then Z) and scale.
type TRS struct {
	Translate mgl64.Vec3
	Rotate    mgl64.Vec3
	Scale     mgl64.Vec3
}

// IdentityTRS is the TRS of the identity matrix.
var IdentityTRS = TRS{Scale: mgl64.Vec3{1, 1, 1}}

// Matrix returns the affine matrix for p: scale, then rotation, then
// translation.
func (p TRS) Matrix() mgl64.Mat4 {
	rot := mgl64.HomogRotate3DZ(p.Rotate[2]).
		Mul4(mgl64.HomogRotate3DY(p.Rotate[1])).
		Mul4(mgl64.HomogRotate3DX(p.Rotate[0]))
	return mgl64.Translate3D(p.Translate[0], p.Translate[1], p.Translate[2]).
		Mul4(rot).
		Mul4(mgl64.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2]))
}

func (p TRS) channels() [9]float64 {
	return [9]float64{
		p.Translate[0], p.Translate[1], p.Translate[2],
		p.Rotate[0], p.Rotate[1], p.Rotate[2],
		p.Scale[0], p.Scale[1], p.Scale[2],
	}
}

func trsFromChannels(c [9]float64) TRS {
	return TRS{
		Translate: mgl64.Vec3{c[0], c[1], c[2]},
		Rotate:    mgl64.Vec3{c[3], c[4], c[5]},
		Scale:     mgl64.Vec3{c[6], c[7], c[8]},
	}
}

// TweenGroup animates the nine TRS channels together.
// There is no global animation manager: callers sample it with At.
//
// gween computes in float32, so every channel value, and every sample of a
// track built by TweenTrack, carries float32 precision: a translation near
// 1e4 is only good to about 1e-3. Use KeyTrack or NewTrack when a cache needs
// full float64 values.
type TweenGroup struct {
	tweens   [9]*gween.Tween
	Duration float64
}

// NewTweenGroup creates a TweenGroup easing from one TRS to another over
// duration seconds.
func NewTweenGroup(from, to TRS, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{Duration: duration}
	a, b := from.channels(), to.channels()
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(a[i]), float32(b[i]), float32(duration), fn)
	}
	return g
}

// At returns the TRS elapsed seconds into the tween. Times outside
// [0, Duration] hold the start or end value.
func (g *TweenGroup) At(elapsed float64) TRS {
	elapsed = math.Max(0, math.Min(elapsed, g.Duration))
	var c [9]float64
	for i, tw := range g.tweens {
		v, _ := tw.Set(float32(elapsed))
		c[i] = float64(v)
	}
	return trsFromChannels(c)
}

// TweenTrack builds a Track with numSamples samples stored at the times of
// ts, easing from one TRS to another between the first and last sample.
func TweenTrack(from, to TRS, ts TimeSampling, numSamples int, fn ease.TweenFunc) *Track {
	if numSamples < 1 {
		numSamples = 1
	}
	samples := make([]mgl64.Mat4, numSamples)
	start := ts.SampleTime(0)
	duration := ts.SampleTime(numSamples-1) - start
	if duration <= 0 {
		samples[0] = from.Matrix()
		for i := 1; i < numSamples; i++ {
			samples[i] = samples[0]
		}
		return NewTrack(ts, samples)
	}
	g := NewTweenGroup(from, to, duration, fn)
	for i := range samples {
		samples[i] = g.At(ts.SampleTime(i) - start).Matrix()
	}
	return NewTrack(ts, samples)
}

// KeyTrack builds a Track from one TRS key per stored sample.
func KeyTrack(ts TimeSampling, keys []TRS) *Track {
	samples := make([]mgl64.Mat4, len(keys))
	for i, k := range keys {
		samples[i] = k.Matrix()
	}
	return NewTrack(ts, samples)
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"outback":      ease.OutBack,
	"outbounce":    ease.OutBounce,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// Easing looks up an easing function by name, e.g. "linear" or "inOutQuad".
// An empty name means linear.
func Easing(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("shutter: unknown easing %q", name)
	}
	return fn, nil
}
