package ecs

import (
	"context"
	"fmt"
	"sort"

	"github.com/phanxgames/shutter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// NodeData links an entity to the hierarchy node it represents.
type NodeData struct {
	Node *shutter.Node
}

// NodeComponent marks entities that take part in resolution.
var NodeComponent = donburi.NewComponentType[NodeData]()

// ResolvedComponent holds the latest resolution of an entity's node. It is
// added by ResolveWorld.
var ResolvedComponent = donburi.NewComponentType[shutter.Resolved]()

// ResolvedEvent is published once per entity on every ResolveWorld.
type ResolvedEvent struct {
	Entity   donburi.Entity
	Path     string
	Animated bool
	Instance string
}

// ResolvedEventType is the Donburi event type for resolution results.
// Events are queued; call ProcessEvents to deliver them.
var ResolvedEventType = events.NewEventType[ResolvedEvent]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// Spawn creates one entity for n and one for each of its descendants, in
// depth-first pre-order, and returns them in that order.
func Spawn(world donburi.World, n *shutter.Node) []donburi.Entity {
	e := world.Create(NodeComponent)
	NodeComponent.SetValue(world.Entry(e), NodeData{Node: n})
	out := []donburi.Entity{e}
	for _, c := range n.Children() {
		out = append(out, Spawn(world, c)...)
	}
	return out
}

// ResolveWorld resolves every hierarchy with at least one node in world.
// Trees are resolved in order of their root node IDs. Nodes without an
// entity are still resolved, since their descendants depend on them, but
// nothing is stored for them. It returns the number of entities updated.
func ResolveWorld(ctx context.Context, world donburi.World, r *shutter.Resolver) (int, error) {
	byNode := make(map[*shutter.Node]donburi.Entity)
	rootSet := make(map[*shutter.Node]struct{})
	nodeQuery.Each(world, func(entry *donburi.Entry) {
		n := NodeComponent.Get(entry).Node
		if n == nil {
			return
		}
		byNode[n] = entry.Entity()
		root := n
		for root.Parent != nil {
			root = root.Parent
		}
		rootSet[root] = struct{}{}
	})

	roots := make([]*shutter.Node, 0, len(rootSet))
	for root := range rootSet {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID < roots[j].ID })

	updated := 0
	for _, root := range roots {
		out, err := r.Resolve(ctx, root)
		if err != nil {
			return updated, fmt.Errorf("shutter/ecs: resolve %s: %w", root.Path(), err)
		}
		for _, res := range out {
			e, ok := byNode[res.Node]
			if !ok {
				continue
			}
			entry := world.Entry(e)
			if !entry.HasComponent(ResolvedComponent) {
				entry.AddComponent(ResolvedComponent)
			}
			ResolvedComponent.SetValue(entry, res)
			ResolvedEventType.Publish(world, ResolvedEvent{
				Entity:   e,
				Path:     res.Node.Path(),
				Animated: res.Block.Animated(),
				Instance: res.Instance,
			})
			updated++
		}
	}
	return updated, nil
}
