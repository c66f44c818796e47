package effect

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lsr/pkg/config"
	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/dom/memdom"
	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/observability"
)

var cardRect = engine.Rect{Left: 200, Top: 100, Width: 400, Height: 200}

func newDoc(touch bool) *memdom.Document {
	n := 0
	return memdom.New(
		memdom.WithTouch(touch),
		memdom.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		}),
	)
}

// addCard appends a target with one div layer per class to parent.
func addCard(doc *memdom.Document, parent *memdom.Element, id string, layers ...string) *memdom.Element {
	card := doc.NewElement("div")
	card.SetID(id)
	card.SetClassName("lsr")
	card.SetRect(cardRect)
	for _, class := range layers {
		l := doc.NewElement("div")
		l.SetClassName(class)
		l.SetInnerHTML("<img src=\"" + class + ".png\">")
		card.AppendChild(l)
	}
	parent.AppendChild(card)
	return card
}

func mustNew(t *testing.T, doc *memdom.Document, p config.Partial, opts ...Option) *Instance {
	t.Helper()
	inst, err := New(doc, config.Merge(config.Defaults(), p), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return inst
}

func TestSetupBuildsHierarchy(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "bg", "fg")

	inst := mustNew(t, doc, config.Partial{})

	if len(inst.Targets()) != 1 {
		t.Fatalf("Targets() = %d, want 1", len(inst.Targets()))
	}
	want := `<div id="card" class="lsr" style="transform: perspective(1200px);">` +
		`<div class="lsr-container">` +
		`<div class="lsr-shine"></div>` +
		`<div class="lsr-shadow"></div>` +
		`<div class="lsr-layers">` +
		`<div class="bg"><img src="bg.png"></div>` +
		`<div class="fg"><img src="fg.png"></div>` +
		`</div></div></div>`
	if got := card.OuterHTML(); got != want {
		t.Errorf("OuterHTML() =\n%s\nwant\n%s", got, want)
	}

	tg := inst.Targets()[0]
	if tg.ID() != "card" || len(tg.Layers()) != 2 || tg.Shine() == nil || tg.Shadow() == nil {
		t.Errorf("target = id %q, %d layers, shine %v, shadow %v", tg.ID(), len(tg.Layers()), tg.Shine(), tg.Shadow())
	}
}

func TestSetupWithoutOverlays(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "bg")

	inst := mustNew(t, doc, config.Partial{Shine: config.Bool(false), Shadow: config.Bool(false), Prefix: config.String("lsr")})

	tg := inst.Targets()[0]
	if tg.Shine() != nil || tg.Shadow() != nil {
		t.Error("overlays created although disabled")
	}
	if strings.Contains(card.OuterHTML(), "lsr-shine") || strings.Contains(card.OuterHTML(), "lsr-shadow") {
		t.Errorf("overlay markup present: %s", card.OuterHTML())
	}
}

func TestSetupCustomPrefix(t *testing.T) {
	doc := newDoc(false)
	card := doc.NewElement("div")
	card.SetClassName("atv")
	card.AppendChild(doc.NewElement("div"))
	doc.Body().AppendChild(card)

	mustNew(t, doc, config.Partial{Prefix: config.String("atv")})

	for _, class := range []string{"atv-container", "atv-shine", "atv-shadow", "atv-layers"} {
		if !strings.Contains(card.OuterHTML(), class) {
			t.Errorf("missing %s in %s", class, card.OuterHTML())
		}
	}
}

func TestSetupSkipsTargetWithoutLayers(t *testing.T) {
	doc := newDoc(false)
	empty := doc.NewElement("div")
	empty.SetClassName("lsr")
	span := doc.NewElement("span")
	span.SetInnerHTML("not a layer")
	empty.AppendChild(span)
	doc.Body().AppendChild(empty)
	before := empty.OuterHTML()

	inst := mustNew(t, doc, config.Partial{})

	if len(inst.Targets()) != 0 {
		t.Errorf("Targets() = %d, want 0", len(inst.Targets()))
	}
	if got := empty.OuterHTML(); got != before {
		t.Errorf("target modified:\n%s\nwas\n%s", got, before)
	}
	if empty.ID() != "" {
		t.Errorf("id assigned to skipped target: %q", empty.ID())
	}
	if len(empty.Events()) != 0 {
		t.Errorf("listeners attached to skipped target: %v", empty.Events())
	}
}

func TestSetupLayerTagCaseInsensitive(t *testing.T) {
	doc := newDoc(false)
	card := doc.NewElement("div")
	card.SetClassName("lsr")
	card.AppendChild(doc.NewElement("section"))
	card.AppendChild(doc.NewElement("div"))
	card.AppendChild(doc.NewElement("SECTION"))
	doc.Body().AppendChild(card)

	inst := mustNew(t, doc, config.Partial{LayerNodeName: config.String("section")})

	if n := len(inst.Targets()[0].Layers()); n != 2 {
		t.Errorf("layers = %d, want 2", n)
	}
}

func TestSetupAssignsIDs(t *testing.T) {
	doc := newDoc(false)
	a := addCard(doc, doc.Body(), "", "l")
	b := addCard(doc, doc.Body(), "keep", "l")
	c := addCard(doc, doc.Body(), "", "l")

	mustNew(t, doc, config.Partial{})

	if a.ID() != "gen-1" || b.ID() != "keep" || c.ID() != "gen-2" {
		t.Errorf("ids = %q, %q, %q", a.ID(), b.ID(), c.ID())
	}
}

func TestSetupIncludesRootTarget(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "l")

	inst := mustNew(t, doc, config.Partial{Node: config.String("#card")})

	if len(inst.Targets()) != 1 || inst.Targets()[0].Root() != card {
		t.Errorf("root target not included")
	}
}

func TestSetupNoTargets(t *testing.T) {
	doc := newDoc(false)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	inst := mustNew(t, doc, config.Partial{}, WithLogger(logger))

	if len(inst.Targets()) != 0 || inst.Subscriptions() != 0 {
		t.Error("expected an empty instance")
	}
	if !strings.Contains(buf.String(), "No layers") {
		t.Errorf("missing debug diagnostic, log = %q", buf.String())
	}
	inst.Destroy()
}

func TestSetupNoDiagnosticWithoutDebug(t *testing.T) {
	doc := newDoc(false)
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	mustNew(t, doc, config.Partial{Debug: config.Bool(false)}, WithLogger(logger))

	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestNewInvalidRoot(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "l")
	before := doc.HTML()

	_, err := New(doc, config.Merge(config.Defaults(), config.Partial{Node: config.String("#missing")}))
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Fatalf("New() error = %v, want INVALID_ROOT", err)
	}
	if !errors.IsConfigurationError(err) {
		t.Error("IsConfigurationError() = false")
	}
	if doc.HTML() != before || len(card.Events()) != 0 {
		t.Error("document mutated before the error")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	doc := newDoc(false)
	addCard(doc, doc.Body(), "card", "l")
	before := doc.HTML()

	_, err := New(doc, config.Merge(config.Defaults(), config.Partial{Prefix: config.String("")}))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("New() error = %v, want INVALID_CONFIG", err)
	}
	if doc.HTML() != before {
		t.Error("document mutated before the error")
	}
}

func TestModeSelection(t *testing.T) {
	tests := []struct {
		touch  bool
		mode   Mode
		events []string
	}{
		{false, ModePointer, []string{"blur", "focus", "mouseenter", "mouseleave", "mousemove"}},
		{true, ModeTouch, []string{"touchend", "touchmove", "touchstart"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			doc := newDoc(tt.touch)
			card := addCard(doc, doc.Body(), "card", "l")
			inst := mustNew(t, doc, config.Partial{})

			if inst.Mode() != tt.mode {
				t.Errorf("Mode() = %v, want %v", inst.Mode(), tt.mode)
			}
			got := card.Events()
			if strings.Join(got, ",") != strings.Join(tt.events, ",") {
				t.Errorf("Events() = %v, want %v", got, tt.events)
			}
			if inst.Subscriptions() != len(tt.events) {
				t.Errorf("Subscriptions() = %d, want %d", inst.Subscriptions(), len(tt.events))
			}
		})
	}
}

func TestPointerMoveAppliesFrame(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a", "b", "c")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 450, 300))

	want := engine.ComputeFrame(engine.Pointer{PageX: 450, PageY: 300}, cardRect, engine.Scroll{}, 3, inst.Config().Params())
	if got := tg.Container().Style().Get("transform"); got != want.ContainerTransform(false) {
		t.Errorf("container transform = %q, want %q", got, want.ContainerTransform(false))
	}
	if strings.Contains(tg.Container().Style().Get("transform"), "scale3d") {
		t.Error("scale applied while not hovered")
	}
	if got := tg.Shine().Style().Get("background"); got != want.Shine.Background() {
		t.Errorf("shine background = %q, want %q", got, want.Shine.Background())
	}
	if got := tg.Shine().Style().Get("transform"); got != want.Shine.Transform() {
		t.Errorf("shine transform = %q", got)
	}
	for n, l := range tg.Layers() {
		if got := l.Style().Get("transform"); got != want.Layers[n].Translate() {
			t.Errorf("layer %d transform = %q, want %q", n, got, want.Layers[n].Translate())
		}
	}
	if got := tg.Layers()[0].Style().Get("transform"); got != "translateX(0px) translateY(0px)" {
		t.Errorf("layer 0 transform = %q", got)
	}
	if tg.LastFrame() == nil {
		t.Error("LastFrame() = nil after move")
	}
}

func TestPointerEnterScalesAndExitResets(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a", "b")
	inst := mustNew(t, doc, config.Partial{Scale: config.Float(1.1)})
	tg := inst.Targets()[0]

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseEnter, 300, 150))
	if !tg.Hovered() || !tg.Container().HasClass("over") {
		t.Fatal("mouseenter did not activate the target")
	}

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 300, 150))
	if got := tg.Container().Style().Get("transform"); !strings.HasSuffix(got, "scale3d(1.1,1.1,1.1)") {
		t.Errorf("hovered transform = %q, want scale suffix", got)
	}

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseLeave, 700, 150))
	assertReset(t, tg)
}

func TestBlurResets(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a", "b")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	card.Dispatch(dom.NewEvent(dom.EventFocus))
	card.Dispatch(dom.NewEvent(dom.EventBlur))
	assertReset(t, tg)
}

func TestFocusComputesCenterFrame(t *testing.T) {
	doc := newDoc(false)
	doc.SetScroll(engine.Scroll{Top: 250, Left: 40})
	card := addCard(doc, doc.Body(), "card", "a", "b")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	card.Dispatch(dom.NewEvent(dom.EventFocus))

	if !tg.Hovered() {
		t.Fatal("focus did not activate the target")
	}
	f := tg.LastFrame()
	if f == nil {
		t.Fatal("focus did not compute a frame")
	}
	if d := f.Offset.X - 0.02; d > 1e-9 || d < -1e-9 {
		t.Errorf("Offset.X = %v, want 0.02", f.Offset.X)
	}
	if d := f.Offset.Y - 0.02; d > 1e-9 || d < -1e-9 {
		t.Errorf("Offset.Y = %v, want 0.02", f.Offset.Y)
	}
	if !strings.Contains(tg.Container().Style().Get("transform"), "scale3d(1,1,1)") {
		t.Errorf("focus frame not scaled: %q", tg.Container().Style().Get("transform"))
	}
}

func TestMoveRecomputesWithoutHover(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 250, 120))
	first := tg.Container().Style().Get("transform")
	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 550, 280))
	second := tg.Container().Style().Get("transform")

	if first == "" || second == "" || first == second {
		t.Errorf("transforms %q then %q, want two distinct frames", first, second)
	}
	if tg.Hovered() {
		t.Error("move alone should not activate the target")
	}
}

func TestTouchLifecycle(t *testing.T) {
	doc := newDoc(true)
	card := addCard(doc, doc.Body(), "card", "a", "b")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	move := dom.NewTouchEvent(dom.EventTouchMove, engine.Pointer{PageX: 450, PageY: 300})
	card.Dispatch(move)
	if move.DefaultPrevented() {
		t.Error("touchmove before touchstart prevented scrolling")
	}

	card.Dispatch(dom.NewTouchEvent(dom.EventTouchStart, engine.Pointer{PageX: 450, PageY: 300}))
	if !tg.Hovered() || !inst.ScrollGuard().Preventing() {
		t.Fatal("touchstart did not activate")
	}

	move = dom.NewTouchEvent(dom.EventTouchMove, engine.Pointer{PageX: 450, PageY: 300}, engine.Pointer{PageX: 0, PageY: 0})
	card.Dispatch(move)
	if !move.DefaultPrevented() {
		t.Error("touchmove during touch did not prevent scrolling")
	}
	want := engine.ComputeFrame(engine.Pointer{PageX: 450, PageY: 300}, cardRect, engine.Scroll{}, 2, inst.Config().Params())
	if got := tg.Container().Style().Get("transform"); got != want.ContainerTransform(true) {
		t.Errorf("transform = %q, want first-touch frame %q", got, want.ContainerTransform(true))
	}

	card.Dispatch(dom.NewTouchEvent(dom.EventTouchEnd))
	if inst.ScrollGuard().Preventing() {
		t.Error("touchend did not clear the guard")
	}
	assertReset(t, tg)
}

func TestTouchMoveWithoutTouchesUsesCenter(t *testing.T) {
	doc := newDoc(true)
	card := addCard(doc, doc.Body(), "card", "a")
	inst := mustNew(t, doc, config.Partial{})

	card.Dispatch(dom.NewTouchEvent(dom.EventTouchMove))

	f := inst.Targets()[0].LastFrame()
	if f == nil || f.Delta != (engine.Vec2{}) {
		t.Errorf("frame = %+v, want centre frame", f)
	}
}

func TestSharedScrollGuard(t *testing.T) {
	guard := NewScrollGuard()

	docA := newDoc(true)
	cardA := addCard(docA, docA.Body(), "a", "l")
	mustNew(t, docA, config.Partial{}, WithScrollGuard(guard))

	docB := newDoc(true)
	cardB := addCard(docB, docB.Body(), "b", "l")
	instB := mustNew(t, docB, config.Partial{}, WithScrollGuard(guard))

	cardA.Dispatch(dom.NewTouchEvent(dom.EventTouchStart))
	if !instB.ScrollGuard().Preventing() {
		t.Fatal("touchstart on A not visible to B")
	}

	move := dom.NewTouchEvent(dom.EventTouchMove, engine.Pointer{PageX: 10, PageY: 10})
	cardB.Dispatch(move)
	if !move.DefaultPrevented() {
		t.Error("B did not honour the shared guard")
	}

	cardB.Dispatch(dom.NewTouchEvent(dom.EventTouchEnd))
	if guard.Preventing() {
		t.Error("last writer should have cleared the guard")
	}
}

func TestSeparateScrollGuards(t *testing.T) {
	docA := newDoc(true)
	cardA := addCard(docA, docA.Body(), "a", "l")
	instA := mustNew(t, docA, config.Partial{})

	docB := newDoc(true)
	addCard(docB, docB.Body(), "b", "l")
	instB := mustNew(t, docB, config.Partial{})

	cardA.Dispatch(dom.NewTouchEvent(dom.EventTouchStart))
	if !instA.ScrollGuard().Preventing() || instB.ScrollGuard().Preventing() {
		t.Error("instances without a shared guard should not couple")
	}
}

func TestExitResetsRegardlessOfState(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a", "b", "c")
	inst := mustNew(t, doc, config.Partial{})
	tg := inst.Targets()[0]

	// exit while idle, then after a full interaction
	card.Dispatch(dom.NewEvent(dom.EventMouseLeave))
	assertReset(t, tg)

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseEnter, 210, 110))
	for x := 210.0; x < 600; x += 40 {
		card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, x, 150))
	}
	tg.Shine().Style().Set("opacity", "0.5")
	card.Dispatch(dom.NewEvent(dom.EventMouseLeave))
	assertReset(t, tg)
}

func TestDestroy(t *testing.T) {
	doc := newDoc(false)
	a := addCard(doc, doc.Body(), "a", "l")
	b := addCard(doc, doc.Body(), "b", "l")
	inst := mustNew(t, doc, config.Partial{})

	inst.Destroy()

	if inst.Subscriptions() != 0 {
		t.Errorf("Subscriptions() = %d after Destroy", inst.Subscriptions())
	}
	for _, card := range []*memdom.Element{a, b} {
		if len(card.Events()) != 0 {
			t.Errorf("%s still has listeners %v", card.ID(), card.Events())
		}
	}

	a.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 450, 300))
	if inst.Targets()[0].LastFrame() != nil {
		t.Error("handler ran after Destroy")
	}

	inst.Destroy()
}

func TestDestroyAfterRemoval(t *testing.T) {
	doc := newDoc(false)
	a := addCard(doc, doc.Body(), "a", "l")
	b := addCard(doc, doc.Body(), "b", "l")
	inst := mustNew(t, doc, config.Partial{})

	a.Remove()
	inst.Destroy()
	inst.Destroy()

	if inst.Subscriptions() != 0 {
		t.Errorf("Subscriptions() = %d after Destroy", inst.Subscriptions())
	}
	if len(b.Events()) != 0 {
		t.Errorf("attached target kept listeners %v", b.Events())
	}
	// the removed element was never reachable, so its listeners remain
	if len(a.Events()) == 0 {
		t.Error("removed element unexpectedly detached")
	}
}

func TestDestroyLeavesForeignListeners(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "l")
	inst := mustNew(t, doc, config.Partial{})

	calls := 0
	card.AddEventListener(dom.EventMouseMove, dom.NewListener(func(*dom.Event) { calls++ }))
	inst.Destroy()

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 1, 1))
	if calls != 1 {
		t.Errorf("foreign listener calls = %d, want 1", calls)
	}
}

func TestZeroSizeTarget(t *testing.T) {
	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "a", "b")
	card.SetRect(engine.Rect{})
	inst := mustNew(t, doc, config.Partial{})

	card.Dispatch(dom.NewMouseEvent(dom.EventMouseMove, 10, 10))

	got := inst.Targets()[0].Container().Style().Get("transform")
	if !strings.Contains(got, "NaN") && !strings.Contains(got, "Infinity") {
		t.Errorf("transform = %q, want degenerate values", got)
	}
	if card.Style().Get("transform") != "perspective(0px)" {
		t.Errorf("perspective = %q", card.Style().Get("transform"))
	}
}

func TestHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	lc := &recordingLifecycle{}
	in := &recordingInput{}
	observability.SetLifecycleHooks(lc)
	observability.SetInputHooks(in)

	doc := newDoc(false)
	card := addCard(doc, doc.Body(), "card", "l")
	empty := doc.NewElement("div")
	empty.SetClassName("lsr")
	doc.Body().AppendChild(empty)

	inst := mustNew(t, doc, config.Partial{})
	card.Dispatch(dom.NewEvent(dom.EventFocus))
	card.Dispatch(dom.NewEvent(dom.EventBlur))
	inst.Destroy()

	if strings.Join(lc.events, ",") != "setup:card:1:pointer,skip:no_layers,teardown:1:5" {
		t.Errorf("lifecycle events = %v", lc.events)
	}
	if strings.Join(in.events, ",") != "enter:card,frame:card:1,exit:card" {
		t.Errorf("input events = %v", in.events)
	}
}

func assertReset(t *testing.T, tg *Target) {
	t.Helper()
	if tg.Hovered() || tg.Container().HasClass("over") {
		t.Error("target still active after exit")
	}
	if got := tg.Container().Style().Get("transform"); got != "" {
		t.Errorf("container transform = %q, want empty", got)
	}
	if tg.Shine() != nil {
		if got := tg.Shine().Style().CSSText(); got != "" {
			t.Errorf("shine style = %q, want empty", got)
		}
	}
	for n, l := range tg.Layers() {
		if got := l.Style().Get("transform"); got != "" {
			t.Errorf("layer %d transform = %q, want empty", n, got)
		}
	}
	if tg.LastFrame() != nil {
		t.Error("LastFrame() kept after exit")
	}
}

type recordingLifecycle struct{ events []string }

func (r *recordingLifecycle) OnTargetSetup(id string, layers int, mode string) {
	r.events = append(r.events, fmt.Sprintf("setup:%s:%d:%s", id, layers, mode))
}
func (r *recordingLifecycle) OnTargetSkipped(reason string) {
	r.events = append(r.events, "skip:"+reason)
}
func (r *recordingLifecycle) OnTeardown(targets, detached int) {
	r.events = append(r.events, fmt.Sprintf("teardown:%d:%d", targets, detached))
}

type recordingInput struct{ events []string }

func (r *recordingInput) OnEnter(id string) { r.events = append(r.events, "enter:"+id) }
func (r *recordingInput) OnFrame(id string, layers int, _ time.Duration) {
	r.events = append(r.events, fmt.Sprintf("frame:%s:%d", id, layers))
}
func (r *recordingInput) OnExit(id string) { r.events = append(r.events, "exit:"+id) }
