// Package ecs provides ECS adapters for shutter's hierarchy resolver.
//
// [Spawn] mirrors a [shutter.Node] tree into a [Donburi] world, one entity
// per node. [ResolveWorld] resolves every tree found in the world and stores
// each node's result in [ResolvedComponent]. Systems that only care about
// what changed can subscribe to [ResolvedEventType] instead.
//
// Usage:
//
//	ecs.Spawn(world, scene.Roots[0])
//	n, err := ecs.ResolveWorld(ctx, world, shutter.NewResolver(scene.Window()))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
