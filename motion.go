package shutter

// MotionBlock is the renderer-facing form of a resolved sample map:
// frame-relative sample times paired with flattened matrices, both in
// ascending time order.
type MotionBlock struct {
	Times    []float64     `json:"times" yaml:"times" cbor:"1,keyasint"`
	Matrices [][16]float64 `json:"matrices" yaml:"matrices,flow" cbor:"2,keyasint"`
}

// NewMotionBlock flattens m for the renderer. Times are converted with
// w.RelativeTime; matrices are copied in storage order. A single sample is
// time-independent and is always placed at relative time zero.
func NewMotionBlock(w Window, m *SampleMap) MotionBlock {
	n := m.Len()
	b := MotionBlock{
		Times:    make([]float64, n),
		Matrices: make([][16]float64, n),
	}
	for i := 0; i < n; i++ {
		t, v := m.At(i)
		if n > 1 {
			b.Times[i] = w.RelativeTime(t)
		}
		b.Matrices[i] = v
	}
	return b
}

// Animated reports whether the block needs a motion block at all. A single
// sample is emitted as a plain transform.
func (b MotionBlock) Animated() bool {
	return len(b.Times) > 1
}
