// Package sapling is the rendering-data layer of a 2D engine: it turns sprites
// that reference regions of a shared texture atlas into a packed, GPU-ready
// vertex stream, and drives the GPU objects that consume that stream.
//
// # Quick start
//
// Load a sprite sheet (a texture plus its TexturePacker atlas), create a batch
// that owns it, and add sprites cut from the sheet's regions:
//
//	sheet, err := sapling.NewSpriteSheet(texture, "assets/hero.json")
//	if err != nil {
//		return err
//	}
//	batch, err := sapling.NewSpriteBatch(sheet)
//	if err != nil {
//		return err
//	}
//	defer batch.Dispose() // also disposes the sheet and its texture
//
//	hero, _ := sapling.NewSprite(sheet.Region("hero_idle"), 10, 10)
//	if err := batch.Add(hero); err != nil {
//		return err
//	}
//
// Each frame, a [BatchRenderer] re-uploads the batch's vertices only when a
// member was added, removed, or actually changed through [Sprite.Modify], and
// then issues one indexed draw through a [gpu.Adapter].
//
// # Vertex layout
//
// Every sprite produces four [PackedVertex] values in the fixed order
// top-left, top-right, bottom-right, bottom-left. [VertexDeclaration]
// describes the interleaved layout (position, color, texture coordinate) to
// the GPU layer.
//
// # Backends
//
// The core never calls a graphics API. backend/ebitengine runs the window loop
// and draws through [Ebitengine]; backend/opengl talks to OpenGL 3.3 directly;
// gpu/gputest records calls for tests. The ecs package forwards batch events
// into a [Donburi] world.
//
// sapling is single-threaded: call it from the goroutine that drives the
// render loop.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package sapling
