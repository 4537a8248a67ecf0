// Package tessera is a retained-mode, tile-based display engine for terminals
// and tile windows.
//
// Tessera keeps a grid of styled character tiles, composites layers and
// interactive components onto it, and routes pointer and keyboard input to the
// component under the pointer or holding focus. Display devices live in
// sub-packages: [github.com/phanxgames/tessera/termdisplay] drives a terminal
// through tcell and [github.com/phanxgames/tessera/ebitendisplay] opens an
// [Ebitengine] window that draws tiles from a glyph sheet.
//
// # Quick start
//
//	display, err := termdisplay.New(termdisplay.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer display.Close()
//	screen := tessera.NewScreen(display)
//
//	button := tessera.NewComponent(tessera.ComponentConfig{
//		Name:      "ok",
//		Position:  tessera.Pos(2, 2),
//		Size:      tessera.NewSize(8, 3),
//		Focusable: true,
//		Renderer: tessera.DefaultRenderingStrategy{
//			Decorations: []tessera.DecorationRenderer{tessera.BoxDecoration{}},
//			Renderer:    label("OK"),
//		},
//	})
//	button.OnMouseClicked(func(ctx *tessera.InputContext) { ctx.Consume() })
//	screen.Container().AddComponent(button)
//	screen.Display()
//	display.Run(ctx)
//
// # Grids and layers
//
// A [TileGrid] is a base buffer plus a [LayerStack]. Reading a cell composites
// the base and then every [Layer] bottom to top; the last non-empty tile wins.
// Layers are compared by identity and can be moved or redrawn in place, which
// is how animations work: an [AnimationHandler] owned by the grid ticks
// [LayerTween] and [FrameAnimation] values that mutate pushed layers.
//
// # Components
//
// A [Component] owns a [TileGraphics] with its own appearance, drawn by a
// [RenderingStrategy]. Components form trees; positions are relative to the
// parent and a child must fit inside its parent. [Component.TransformToLayers]
// flattens a subtree into one layer per component at absolute positions.
//
// Each component resolves its current style from a [ComponentStyleSet] and its
// state flags. Precedence, highest first: disabled, active (pressed), focused,
// mouse over, default.
//
// # Input
//
// [Container.InputEmitted] hit-tests pointer events against absolute bounds
// and delivers them to the deepest, topmost component, bubbling to ancestors
// until a listener calls [InputContext.Consume]. Key events go to the focus
// holder; Tab and Shift+Tab move focus.
//
// # Screens
//
// A [Screen] pairs a [Container] with an offscreen grid for one [Display].
// [Screen.Display] renders it and makes it the display's active screen;
// [DispatchInput] routes device input to whichever screen is active.
//
// # Themes and game integration
//
// [DefaultStyleSetForTheme] derives component styles from a [ColorTheme].
// Themes can be loaded from HCL files with
// [github.com/phanxgames/tessera/hcltheme]. The separate
// github.com/phanxgames/tessera/ecs module republishes container input as
// Donburi events.
//
// # Debugging
//
// [SetDebugMode] prints render and merge timings and tree warnings to stderr.
//
// [Ebitengine]: https://ebitengine.org
package tessera
