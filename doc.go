// Package particlefield is an embeddable 2D particle field for [Ebitengine]:
// a caller-supplied update rule mutates a collection of particles once per
// frame, and every frame is drawn as a single batched DrawTriangles32 call
// from one sprite atlas.
//
// # Quick start
//
//	sheet := particlefield.NewSpriteSheet("spark.png", loader,
//		particlefield.SpriteSheetOptions{FrameWidth: 21})
//
//	ctrl := particlefield.NewController(sheet, particlefield.TickFunc(
//		func(c *particlefield.Controller, elapsed time.Duration, size particlefield.Size) {
//			p := particlefield.NewParticle()
//			p.VX, p.VY = particlefield.Range{Min: -2, Max: 2}.Random(), -3
//			p.Lifespan = 90
//			c.Spawn(p)
//			for _, p := range c.Particles {
//				p.Update(particlefield.WithFrame(p.Frame + 1))
//			}
//			c.RemoveExpired()
//		}),
//		particlefield.WithOrigin(particlefield.Vec2{X: 0, Y: 1}),
//		particlefield.WithBlendMode(particlefield.BlendAdd),
//	)
//
//	game := particlefield.NewGame(ctrl, nil)
//	game.Scheduler.AddPoller(loader)
//	err := particlefield.Run(game, particlefield.RunConfig{Title: "Sparks", Width: 640, Height: 480})
//
// # Frame sequence
//
// Each display refresh the [Scheduler] calls [Controller.Tick], which only
// records the elapsed time and marks a render as due. The [BatchRenderer]
// then calls [Controller.ExecuteOnTick] (the only place the tick handler
// runs) and builds the batch from the just-updated particles, so a frame
// never lags its simulation step. Everything runs on the game's thread.
//
// # Frames and alignment
//
// A [FrameProvider] maps a particle's Frame index to a source rectangle,
// wrapping modulo its length. [SpriteSheet] derives a fixed grid from the
// atlas size; [PackedAtlas] reads TexturePacker JSON for variable-size frames.
//
// Origin and Anchor are alignment vectors: -1 maps to 0 and +1 maps to the
// full extent. Origin positions particle (0,0) on the canvas; Anchor chooses
// the rotation/scale pivot inside each frame.
//
// [Ebitengine]: https://ebitengine.org
package particlefield
