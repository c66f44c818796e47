// Package scene reads and writes TOML scene files.
//
// A scene describes a small document, the effect configuration applied to
// it and a script of input events. The CLI uses scenes to run the effect
// without a browser:
//
//	touch = false
//
//	[scroll]
//	top = 0
//	left = 0
//
//	[effect]
//	prefix = "lsr"
//
//	[effect.rotation]
//	x = 0.1
//
//	[[element]]
//	id = "card"
//	class = "lsr"
//	rect = { left = 200, top = 100, width = 400, height = 200 }
//
//	  [[element.child]]
//	  class = "bg"
//	  html = "<img src=bg.png>"
//
//	[[event]]
//	target = "card"
//	type = "mousemove"
//	x = 450
//	y = 300
//
// # Elements
//
// Top-level elements are appended to the document body in file order.
// Children nest through [[element.child]] tables to any depth. The tag
// defaults to "div". Ids must be unique when given.
//
// # Events
//
// Each event names its target by id. Pointer events carry the page
// position in x and y; focus and blur carry none. For touch events x and y
// form the first touch point, and an event without them has no touches.
//
// Use [Parse] or [Read] to decode, [Scene.Build] to create the document,
// and [Scene.Replay] to dispatch the script once an effect is set up.
package scene
