// Package pkg holds the libraries behind lsr, a layered parallax effect for
// card-like elements.
//
// # Overview
//
// A target is an element whose direct layer children move by different
// amounts as the pointer crosses it, while the whole card tilts toward the
// pointer and an optional sheen follows it. The work is split between a
// pure calculation and a stateful driver:
//
//  1. [engine] - Transform math: pointer position to rotation, layer
//     offsets and sheen, plus CSS formatting of the result
//  2. [config] - Effect settings, defaults, merging and TOML loading
//  3. [dom] - The minimal document interface the effect needs, with an
//     in-memory implementation in [dom/memdom]
//  4. [effect] - Setup over a document, input handling and teardown
//  5. [scene] - TOML scene files: a document, settings and input script
//
// Supporting packages:
//
//   - [errors] - Coded errors with user-facing messages
//   - [observability] - Hooks for setup and input events
//   - [cache] - Storage for rendered diagrams
//   - [render] and [render/tree] - Layer hierarchy diagrams via Graphviz
//   - [buildinfo] - Version information
//
// # Data Flow
//
//	scene.toml
//	     ↓
//	[scene] package (build document, merge settings)
//	     ↓
//	[effect] package (wrap targets, attach listeners)
//	     ↓  input events
//	[engine] package (compute frame)
//	     ↓
//	inline styles on the container, layers and sheen
//
// # Quick Start
//
//	doc := memdom.New()
//	card := doc.NewElement("div")
//	card.SetClassName("lsr")
//	card.SetRect(engine.Rect{Left: 200, Top: 100, Width: 400, Height: 200})
//	card.AppendChild(doc.NewElement("div"))
//	card.AppendChild(doc.NewElement("div"))
//	doc.Body().AppendChild(card)
//
//	inst, err := effect.New(doc, config.Defaults())
//	if err != nil {
//	    return err
//	}
//	defer inst.Destroy()
//
//	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 450, 300))
//
// [engine]: github.com/matzehuels/lsr/pkg/engine
// [config]: github.com/matzehuels/lsr/pkg/config
// [dom]: github.com/matzehuels/lsr/pkg/dom
// [dom/memdom]: github.com/matzehuels/lsr/pkg/dom/memdom
// [effect]: github.com/matzehuels/lsr/pkg/effect
// [scene]: github.com/matzehuels/lsr/pkg/scene
// [errors]: github.com/matzehuels/lsr/pkg/errors
// [observability]: github.com/matzehuels/lsr/pkg/observability
// [cache]: github.com/matzehuels/lsr/pkg/cache
// [render]: github.com/matzehuels/lsr/pkg/render
// [render/tree]: github.com/matzehuels/lsr/pkg/render/tree
// [buildinfo]: github.com/matzehuels/lsr/pkg/buildinfo
package pkg
