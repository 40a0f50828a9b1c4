package shutter

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-Resolve traversal metrics.
// Only collected when Resolver.Debug is true.
type debugStats struct {
	resolveTime  time.Duration
	nodeCount    int
	animated     int
	worldSamples int
	maxDepth     int
	instanced    int
}

func collectStats(out []Resolved, elapsed time.Duration) debugStats {
	stats := debugStats{resolveTime: elapsed, nodeCount: len(out)}
	for _, res := range out {
		if res.Block.Animated() {
			stats.animated++
		}
		stats.worldSamples += res.World.Len()
		if d := res.Node.Depth(); d > stats.maxDepth {
			stats.maxDepth = d
		}
		if res.Instance != "" && res.Instance != res.Node.Path() {
			stats.instanced++
		}
	}
	return stats
}

// debugLog reports traversal statistics at info level.
func (r *Resolver) debugLog(stats debugStats) {
	r.logger().Info("resolve stats",
		zap.Duration("elapsed", stats.resolveTime),
		zap.Int("nodes", stats.nodeCount),
		zap.Int("animated", stats.animated),
		zap.Int("world_samples", stats.worldSamples),
		zap.Int("max_depth", stats.maxDepth),
		zap.Int("instanced", stats.instanced),
	)
}

// debugMaxTreeDepth is the depth past which a hierarchy is probably a
// mistake, such as a flattened instance chain.
const debugMaxTreeDepth = 64

// debugCheckTreeDepth warns if n sits deeper than debugMaxTreeDepth.
func (r *Resolver) debugCheckTreeDepth(n *Node) {
	if depth := n.Depth(); depth > debugMaxTreeDepth {
		r.logger().Warn("hierarchy depth exceeds threshold",
			zap.String("path", n.Path()),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
		)
	}
}
