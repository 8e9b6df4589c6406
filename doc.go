// Package glyphswarm animates a cloud of particles that assemble into text.
//
// A [GlyphSampler] renders a string into an offscreen alpha mask sized to the
// viewport and samples it on a coarse grid, producing a point cloud. A
// [Field] of particles is retargeted onto that cloud and eased toward it
// every frame by an [AnimationLoop], which paints each particle as a small
// disc in a slowly cycling hue. A [ModeTimer] alternates between two text
// variants on a fixed interval.
//
// # Quick start
//
// The simplest way to see a swarm is [Run], which opens an [Ebitengine] window
// and drives everything for you:
//
//	cfg := glyphswarm.DefaultConfig()
//	glyphswarm.Run(cfg, glyphswarm.RunConfig{
//		Title: "glyphswarm", Width: 1024, Height: 640,
//	})
//
// For terminals, see the term subpackage, which draws the same swarm with
// braille characters through tcell.
//
// # Scheduling
//
// Nothing runs in the background. Frame and timer callbacks are queued on a
// [Scheduler] and executed when the host calls [Scheduler.Pump], once per
// display refresh. The window host pumps from [ebiten.Game] Update, the
// terminal host from a ticker, and [Headless] from a [ManualClock] so tests
// can step simulated time exactly.
//
// A [Swarm] ties the pieces together. The host reports visibility through
// [Swarm.SetActive]; an inactive swarm holds no pending frame and no flip
// timer, and resumes from its current particle state.
//
// # Configuration
//
// [Config] is loaded from TOML with [LoadConfig]. Unknown keys are rejected.
//
//	particle_count = 1500
//	ease = 0.015
//	mode_interval = "8s"
//
//	[primary]
//	text = "SHENZHEN"
//
//	[secondary]
//	text = "深圳"
//	font = "/usr/share/fonts/noto/NotoSansCJK-Bold.ttc"
//
// The embedded default font is Go Bold, which has no CJK glyphs; point a text
// variant at a font file to render scripts it does not cover.
//
// # Headless rendering
//
// [Headless] runs a swarm on a [RasterSurface] and can execute a JSON
// [Script] of activate, advance, resize, mode and screenshot steps, writing
// PNG frames with [SaveRaster].
//
// Set Config.Debug to log sampling passes and frame timings to stderr.
//
// [Ebitengine]: https://ebitengine.org
package glyphswarm
