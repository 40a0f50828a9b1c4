package shutter

// Concatenate resolves a node's world-space samples from its parent's
// world-space samples and its own local samples.
//
// The result is keyed by the union of both maps' times. At each time the
// local transform is applied first and the parent's second (local * parent in
// row-vector terms); either side is interpolated or clamped where it has no
// sample of its own. A nil parent marks a hierarchy root and yields a copy of
// local.
func Concatenate(parent, local *SampleMap) *SampleMap {
	if parent == nil {
		return local.Clone()
	}

	times := parent.Times().Union(local.Times())
	out := NewSampleMap(len(times))
	for _, t := range times {
		out.times = append(out.times, t)
		out.values = append(out.values, parent.ValueAt(t).Mul4(local.ValueAt(t)))
	}
	return out
}
