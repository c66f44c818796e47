// Package effect builds and drives layered parallax effect instances.
//
// # Overview
//
// [New] discovers every target under a root element, rebuilds each target's
// subtree into the layer hierarchy the effect animates, and subscribes to
// input events:
//
//	<div class="lsr" id="card" style="transform: perspective(1200px);">
//	  <div class="lsr-container">
//	    <div class="lsr-shine"></div>
//	    <div class="lsr-shadow"></div>
//	    <div class="lsr-layers">
//	      <div class="bg">...</div>
//	      <div class="fg">...</div>
//	    </div>
//	  </div>
//	</div>
//
// A target qualifies when it carries the prefix class and has at least one
// direct child with the configured layer tag. Targets without layers are
// left unmodified.
//
// # Interaction
//
// The input modality is chosen once per instance from the adapter's touch
// capability:
//
//   - Touch: touchstart enters, touchmove tracks the first touch point,
//     touchend exits.
//   - Pointer: mouseenter and focus enter, mousemove tracks, mouseleave and
//     blur exit. Focus also computes a frame for the target's centre.
//
// Every move recomputes and applies a full [engine.Frame]. Exit does not
// compute a neutral frame: it clears the container transform, the shine
// style and every layer transform back to the stylesheet defaults.
//
// # Scroll suppression
//
// While a touch interaction is active, touchmove events prevent the host's
// default scrolling. The flag lives in a [ScrollGuard]. Each instance owns
// one unless [WithScrollGuard] shares a guard between instances, in which
// case the most recent touchstart or touchend across them wins.
//
// # Teardown
//
// [Instance.Destroy] detaches every listener the instance attached, looking
// targets up again by id. Targets that were removed from the document are
// skipped. Destroy is idempotent.
package effect
