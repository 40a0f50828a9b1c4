package shutter

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resolved is the outcome of resolving one node for a window.
type Resolved struct {
	Node *Node

	// Times are the local sample times selected for the node.
	Times SampleTimes
	// Local holds the samples read from the node's source at Times.
	Local *SampleMap
	// World is the concatenation of Local with the parent's World.
	World *SampleMap
	// Static is set when World does not vary with time: the node and every
	// ancestor it inherits from have fewer than two stored samples.
	Static bool
	// Block is World in renderer form.
	Block MotionBlock
	// Instance is the path of the first node, in traversal order, whose
	// Block is identical to this one. Only set when the Resolver has an
	// InstanceTable.
	Instance string
}

// Resolver walks a hierarchy top-down and resolves every node's world-space
// samples for one Window.
type Resolver struct {
	Window Window

	// Logger receives per-node debug output. Defaults to a no-op logger.
	Logger *zap.Logger

	// Parallel resolves sibling subtrees concurrently. Output order is the
	// same depth-first pre-order either way.
	Parallel bool
	// MaxParallel bounds the goroutines started per sibling group when
	// Parallel is set. Zero means no bound.
	MaxParallel int

	// Instances, when set, de-duplicates identical world motion blocks
	// across the resolved nodes.
	Instances *InstanceTable

	// Debug logs traversal statistics after each Resolve.
	Debug bool
}

// NewResolver returns a sequential Resolver for w.
func NewResolver(w Window) *Resolver {
	return &Resolver{Window: w, Logger: zap.NewNop()}
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Resolve resolves root and all of its descendants, returned in depth-first
// pre-order. The only error is ctx's, checked between nodes.
func (r *Resolver) Resolve(ctx context.Context, root *Node) ([]Resolved, error) {
	start := time.Now()
	out, err := r.resolveSubtree(ctx, nil, root)
	if err != nil {
		return nil, err
	}
	if r.Instances != nil {
		for i := range out {
			out[i].Instance, _ = r.Instances.Intern(out[i].Node.Path(), out[i].Block)
		}
	}
	if r.Debug {
		r.debugLog(collectStats(out, time.Since(start)))
	}
	return out, nil
}

func (r *Resolver) resolveSubtree(ctx context.Context, parent *Resolved, n *Node) ([]Resolved, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Debug {
		r.debugCheckTreeDepth(n)
	}

	res := r.ResolveNode(parent, n)
	children := n.Children()
	parts := make([][]Resolved, len(children))

	if r.Parallel && len(children) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		if r.MaxParallel > 0 {
			g.SetLimit(r.MaxParallel)
		}
		for i, child := range children {
			i, child := i, child
			g.Go(func() error {
				sub, err := r.resolveSubtree(gctx, &res, child)
				parts[i] = sub
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, child := range children {
			sub, err := r.resolveSubtree(ctx, &res, child)
			if err != nil {
				return nil, err
			}
			parts[i] = sub
		}
	}

	out := []Resolved{res}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// ResolveNode resolves a single node given its parent's result, or nil for
// a root. Nodes that do not inherit transforms are resolved as roots.
func (r *Resolver) ResolveNode(parent *Resolved, n *Node) Resolved {
	var parentWorld *SampleMap
	parentStatic := true
	if parent != nil && n.InheritsTransform {
		parentWorld = parent.World
		parentStatic = parent.Static
	}

	var (
		times SampleTimes
		local *SampleMap
	)
	localStatic := n.Source == nil || n.Source.NumSamples() < 2
	if n.Source == nil {
		times = SampleTimes{0}
		local = NewSampleMap(1)
		local.Set(0, mgl64.Ident4())
	} else {
		times = SelectSampleTimes(n.Source.Sampling(), n.Source.NumSamples(), r.Window, parentWorld.Times())
		local = ReadSamples(n.Source, times)
	}

	var world *SampleMap
	switch {
	case parentWorld == nil:
		world = Concatenate(nil, local)
	case localStatic && !parentStatic:
		world = Concatenate(parentWorld, rekeyStatic(local, parentWorld.Times()))
	case parentStatic && !localStatic:
		world = Concatenate(rekeyStatic(parentWorld, local.Times()), local)
	default:
		world = Concatenate(parentWorld, local)
	}

	res := Resolved{
		Node:   n,
		Times:  times,
		Local:  local,
		World:  world,
		Static: localStatic && parentStatic,
		Block:  NewMotionBlock(r.Window, world),
	}

	r.logger().Debug("resolved node",
		zap.String("path", n.Path()),
		zap.Float64s("times", times),
		zap.Int("world_samples", world.Len()),
		zap.Bool("static", res.Static),
	)
	return res
}

// rekeyStatic returns the only sample of the static map m stored at every
// one of times. Static samples are keyed at time zero, which is not a time
// the window covers, so they are moved onto the animated side's times before
// concatenation.
func rekeyStatic(m *SampleMap, times SampleTimes) *SampleMap {
	if m.Len() == 0 || len(times) == 0 {
		return m
	}
	_, v := m.At(0)
	out := NewSampleMap(len(times))
	for _, t := range times {
		out.times = append(out.times, t)
		out.values = append(out.values, v)
	}
	return out
}
