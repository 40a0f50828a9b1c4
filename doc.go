// Package shutter resolves time-sampled transform hierarchies into
// motion-blur-aware sample sets for a renderer.
//
// Geometry caches store each attribute on its own, possibly sparse, set of
// sample times. A renderer asks for one frame and a camera shutter interval.
// Shutter decides which stored samples cover that interval, interpolates
// affine transforms between them, and concatenates a node's local samples with
// its parent's already-resolved world samples even when the two levels were
// sampled at different times.
//
// # Quick start
//
//	w := shutter.NewWindow(12, 24, -0.25, 0.25)
//
//	root := shutter.NewNode("root", shutter.NewTrack(sampling, rootMatrices))
//	arm := shutter.NewNode("arm", shutter.NewTrack(armSampling, armMatrices))
//	root.AddChild(arm)
//
//	r := shutter.NewResolver(w)
//	resolved, err := r.Resolve(ctx, root)
//	for _, res := range resolved {
//		emit(res.Node.Path(), res.Block.Times, res.Block.Matrices)
//	}
//
// # Building blocks
//
// The resolver is a thin loop over four pure pieces that callers with their
// own traversal can use directly:
//
//   - [NewWindow] derives absolute open/close times from frame, fps and
//     shutter offsets; [Window.RelativeTime] maps absolute times back to
//     frame-relative renderer times.
//   - [SelectSampleTimes] picks the minimal ordered set of stored sample times
//     covering a window, optionally widened by a parent's times.
//   - [Interpolate] blends two affine matrices through a scale/shear/rotation/
//     translation decomposition with shortest-arc slerp; [SampleMap.ValueAt]
//     clamps or interpolates a lookup into a time-keyed map.
//   - [Concatenate] produces a node's world samples from its parent's world
//     samples and its own local samples.
//
// # Matrix convention
//
// Matrices are [mgl64.Mat4] values. mathgl multiplies column vectors, while
// geometry caches usually store row-vector matrices; both share the same flat
// storage order, so matrices read from a cache are used as-is and
// [MotionBlock] hands the same sixteen values back to the renderer. The
// row-vector product "local * parent" is written parent.Mul4(local) here.
//
// Everything in this package except [Resolver] and [InstanceTable] is a pure
// function over its inputs and is safe for concurrent use.
package shutter
