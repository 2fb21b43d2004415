package scene

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/blockdiag/pkg/block"
	"github.com/matzehuels/blockdiag/pkg/errors"
	"github.com/matzehuels/blockdiag/pkg/observability"
)

type resyncRecorder struct {
	observability.NoopSceneHooks
	ids []string
}

func (r *resyncRecorder) OnResync(id string, _ int, _ error) { r.ids = append(r.ids, id) }

func TestDragResyncsSelectedOnly(t *testing.T) {
	f := newFixture(t)
	f.block(t, "a", 0, 3, pt(100, 100))
	b := f.block(t, "b", 1, 0, pt(400, 100))
	c := f.block(t, "c", 1, 0, pt(400, 300))
	d := f.block(t, "d", 1, 0, pt(700, 300))
	wb, _ := f.Connect("a", 0, "b", 0)
	wc, _ := f.Connect("a", 1, "c", 0)
	wd, _ := f.Connect("a", 2, "d", 0)

	_ = f.Select("b", true)
	_ = f.Select("c", true)

	// Move d without going through the scene: its wire goes stale.
	staleD := wd.End()
	d.Place(pt(0, 0))

	rec := &resyncRecorder{}
	observability.SetSceneHooks(rec)
	defer observability.Reset()

	// Grab b at its center-ish and drag by roughly (100, 40).
	mustDispatch(t, f, PressAt(pt(450, 140), Left))
	mustDispatch(t, f, MoveTo(pt(553, 187)))
	mustDispatch(t, f, ReleaseAt(pt(553, 187)))

	if b.Position() != pt(500, 140) {
		t.Errorf("b = %v, want (500,140)", b.Position())
	}
	if c.Position() != pt(500, 340) {
		t.Errorf("c = %v, want to follow to (500,340)", c.Position())
	}

	slices.Sort(rec.ids)
	if !slices.Equal(slices.Compact(rec.ids), []string{"b", "c"}) {
		t.Errorf("resynced %v, want b and c only", rec.ids)
	}
	if wb.End() != pt(500, 180) || wc.End() != pt(500, 380) {
		t.Errorf("ends = %v / %v", wb.End(), wc.End())
	}
	if wd.End() != staleD {
		t.Errorf("wire to d was resynced: %v", wd.End())
	}

	if !b.Selected() || !c.Selected() {
		t.Error("a drag must keep the multi-selection")
	}
}

func TestFollowersAreClamped(t *testing.T) {
	f := newFixture(t)
	b := f.block(t, "b", 0, 0, pt(400, 100))
	c := f.block(t, "c", 0, 0, pt(860, 100))
	_ = f.Select("b", true)
	_ = f.Select("c", true)

	mustDispatch(t, f, PressAt(pt(450, 140), Left))
	mustDispatch(t, f, MoveTo(pt(550, 140)))

	if b.Position() != pt(500, 100) {
		t.Errorf("b = %v", b.Position())
	}
	if c.Position() != pt(880, 100) {
		t.Errorf("c = %v, want clamped to (880,100)", c.Position())
	}
}

func TestUnselectedDragMovesAlone(t *testing.T) {
	t.Run("toggled off", func(t *testing.T) {
		f := newFixture(t)
		a := f.block(t, "a", 0, 0, pt(100, 100))
		b := f.block(t, "b", 0, 0, pt(400, 100))
		_ = f.Select("b", true)

		// The first toggle adds a, the second removes it and starts a drag.
		toggle := Event{Kind: Press, At: pt(150, 140), Button: Left, Toggle: true}
		mustDispatch(t, f, toggle, ReleaseAt(pt(150, 140)))
		mustDispatch(t, f, toggle, MoveTo(pt(250, 140)), ReleaseAt(pt(250, 140)))

		if a.Selected() {
			t.Fatal("a should be deselected")
		}
		if a.Position() != pt(200, 100) {
			t.Errorf("a = %v, want (200,100)", a.Position())
		}
		if b.Position() != pt(400, 100) {
			t.Errorf("b = %v, want it to stay at (400,100)", b.Position())
		}
	})

	t.Run("connector", func(t *testing.T) {
		f := newFixture(t)
		b := f.block(t, "b", 0, 0, pt(100, 100))
		c, err := f.AddConnector(pt(400, 300))
		if err != nil {
			t.Fatal(err)
		}
		_ = f.Select(c.ID(), false)
		_ = f.Select("b", true)

		mustDispatch(t, f, PressAt(pt(405, 305), Left), MoveTo(pt(445, 265)), ReleaseAt(pt(445, 265)))
		if c.Position() != pt(440, 260) {
			t.Errorf("connector = %v, want (440,260)", c.Position())
		}
		if b.Position() != pt(100, 100) {
			t.Errorf("b = %v, want it to stay at (100,100)", b.Position())
		}
	})
}

func TestDanglingWireStopsDispatch(t *testing.T) {
	f := newFixture(t)
	f.block(t, "a", 0, 1, pt(100, 100))
	b := f.block(t, "b", 1, 0, pt(400, 100))
	if _, err := f.Connect("a", 0, "b", 0); err != nil {
		t.Fatal(err)
	}
	b.Destroy() // behind the scene's back

	mustDispatch(t, f, PressAt(pt(150, 140), Left))
	frames := f.rec.Len()
	if err := f.Dispatch(MoveTo(pt(250, 140))); !errors.Is(err, errors.ErrCodeDanglingWire) {
		t.Fatalf("Dispatch(move) = %v, want DANGLING_WIRE", err)
	}
	if f.rec.Len() != frames {
		t.Error("a dangling wire must not be painted")
	}
	// The fault is reported once.
	mustDispatch(t, f, ReleaseAt(pt(250, 140)))

	events := make(chan Event, 4)
	events <- PressAt(pt(250, 140), Left)
	events <- MoveTo(pt(350, 140))
	events <- ReleaseAt(pt(350, 140))
	events <- PressAt(pt(800, 500), Left)
	close(events)
	if err := f.Run(context.Background(), events); !errors.Is(err, errors.ErrCodeDanglingWire) {
		t.Errorf("Run() = %v, want DANGLING_WIRE", err)
	}
	if len(events) != 2 {
		t.Errorf("Run should stop at the failing move, %d events left", len(events))
	}

	if err := f.Flip("a"); !errors.Is(err, errors.ErrCodeDanglingWire) {
		t.Errorf("Flip() = %v, want DANGLING_WIRE", err)
	}
}

func TestPressSelection(t *testing.T) {
	f := newFixture(t)
	a := f.block(t, "a", 0, 0, pt(100, 100))
	b := f.block(t, "b", 0, 0, pt(400, 100))
	inA, inB, empty := pt(150, 140), pt(450, 140), pt(800, 500)

	mustDispatch(t, f, PressAt(inA, Left), ReleaseAt(inA))
	if !a.Selected() || b.Selected() {
		t.Fatal("press should select a only")
	}

	mustDispatch(t, f, PressAt(inB, Left), ReleaseAt(inB))
	if a.Selected() || !b.Selected() {
		t.Fatal("press on b should replace the selection")
	}

	mustDispatch(t, f, Event{Kind: Press, At: inA, Toggle: true}, ReleaseAt(inA))
	if !a.Selected() || !b.Selected() {
		t.Fatal("toggle press should add a")
	}

	// Plain click on an already selected block collapses the selection.
	mustDispatch(t, f, PressAt(inB, Left))
	if !a.Selected() {
		t.Fatal("selection should survive until release")
	}
	mustDispatch(t, f, ReleaseAt(inB))
	if a.Selected() || !b.Selected() {
		t.Fatal("click without drag should leave only b selected")
	}

	mustDispatch(t, f, Event{Kind: Press, At: inB, Toggle: true}, ReleaseAt(inB))
	if b.Selected() {
		t.Fatal("toggle press should deselect b")
	}

	_ = f.Select("a", true)
	mustDispatch(t, f, PressAt(empty, Left), ReleaseAt(empty))
	if len(f.Selected()) != 0 {
		t.Error("press on empty canvas should clear the selection")
	}
}

func TestPressRaises(t *testing.T) {
	f := newFixture(t)
	a := f.block(t, "a", 0, 0, pt(100, 100))
	b := f.block(t, "b", 0, 0, pt(300, 100))

	mustDispatch(t, f, PressAt(pt(150, 140), Right))
	if a.Z() <= b.Z() {
		t.Error("any press should raise the target")
	}
	if ents := f.Entities(); ents[len(ents)-1] != block.Entity(a) {
		t.Error("raised entity should be last in z-order")
	}
}

func TestRightPressTogglesParamWindow(t *testing.T) {
	var toggled []string
	f := newFixture(t, func(o *Options) {
		o.ParamWindow = ParamWindowFunc(func(id string) { toggled = append(toggled, id) })
	})
	f.block(t, "a", 0, 0, pt(100, 100))
	in := pt(150, 140)

	mustDispatch(t, f, PressAt(in, Right))
	if len(toggled) != 0 {
		t.Fatal("right press on an unselected block must not toggle")
	}

	_ = f.Select("a", true)
	mustDispatch(t, f, PressAt(in, Right), PressAt(in, Right))
	if !slices.Equal(toggled, []string{"a", "a"}) {
		t.Errorf("toggled = %v", toggled)
	}
}

func TestConnectorPressOnlyRaises(t *testing.T) {
	var toggled int
	f := newFixture(t, func(o *Options) {
		o.ParamWindow = ParamWindowFunc(func(string) { toggled++ })
	})
	b := f.block(t, "b", 0, 0, pt(400, 100))
	_ = f.Select("b", true)
	c, _ := f.AddConnector(pt(200, 400))
	c.SetSelected(false)
	_ = f.Raise("b")

	at := c.Position()
	mustDispatch(t, f, PressAt(at, Left), ReleaseAt(at))
	if c.Selected() || !b.Selected() {
		t.Error("pressing a connector must not change the selection")
	}
	if c.Z() <= b.Z() {
		t.Error("pressing a connector should raise it")
	}

	c.SetSelected(true)
	mustDispatch(t, f, PressAt(at, Right))
	if toggled != 0 {
		t.Error("connectors have no parameter window")
	}
}

func TestDragConnector(t *testing.T) {
	f := newFixture(t)
	f.block(t, "a", 0, 1, pt(100, 100))
	f.block(t, "b", 1, 0, pt(600, 100))
	w, _ := f.Connect("a", 0, "b", 0)
	c, err := f.SplitWire(w.ID, pt(400, 300))
	if err != nil {
		t.Fatal(err)
	}

	mustDispatch(t, f, PressAt(pt(405, 305), Left), MoveTo(pt(445, 265)), ReleaseAt(pt(445, 265)))
	if c.Position() != pt(440, 260) {
		t.Fatalf("connector = %v, want (440,260)", c.Position())
	}
	for _, w := range f.WiresOf(c.ID()) {
		in, _ := c.Input(0)
		out, _ := c.Output(0)
		if w.To == in && w.End() != pt(440, 260) {
			t.Errorf("incoming end = %v", w.End())
		}
		if w.From == out && w.Start() != pt(460, 260) {
			t.Errorf("outgoing start = %v", w.Start())
		}
	}
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	f := newFixture(t)
	a := f.block(t, "a", 0, 0, pt(100, 100))
	_ = f.Repaint()
	frames := f.rec.Len()

	mustDispatch(t, f, MoveTo(pt(500, 500)), ReleaseAt(pt(500, 500)))
	if a.Position() != pt(100, 100) {
		t.Error("move without a press must not drag")
	}
	if f.rec.Len() != frames {
		t.Error("no-op events must not repaint")
	}
}

func TestDispatchRepaints(t *testing.T) {
	f := newFixture(t)
	f.block(t, "a", 0, 0, pt(100, 100))

	mustDispatch(t, f, PressAt(pt(150, 140), Left))
	if f.rec.Len() != 1 {
		t.Fatalf("frames = %d, want 1", f.rec.Len())
	}
	last := f.rec.Last()
	if last.Seq != 1 || len(last.Entities) != 1 || !last.Entities[0].Selected {
		t.Errorf("frame = %+v", last)
	}
	if f.NeedsRepaint() {
		t.Error("repaint should clear the change flag")
	}

	if _, ok := f.Dragging(); !ok {
		t.Error("press should start a drag")
	}
	mustDispatch(t, f, ReleaseAt(pt(150, 140)))
	if _, ok := f.Dragging(); ok {
		t.Error("release should end the drag")
	}
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	a := f.block(t, "a", 0, 0, pt(100, 100))

	events := make(chan Event, 3)
	events <- PressAt(pt(150, 140), Left)
	events <- MoveTo(pt(250, 140))
	events <- ReleaseAt(pt(250, 140))
	close(events)

	if err := f.Run(context.Background(), events); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if a.Position() != pt(200, 100) {
		t.Errorf("a = %v, want (200,100)", a.Position())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := f.Run(ctx, make(chan Event)); err != context.DeadlineExceeded {
		t.Errorf("Run() on idle channel = %v, want deadline exceeded", err)
	}
}

func mustDispatch(t *testing.T, f *fixture, evs ...Event) {
	t.Helper()
	for _, ev := range evs {
		if err := f.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%v): %v", ev, err)
		}
	}
}
