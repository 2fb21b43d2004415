package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSceneHooks{}
	s.OnPress("gain", "left")
	s.OnMove("gain", 2, time.Millisecond)
	s.OnResync("gain", 3, nil)
	s.OnRepaint(4, 3, time.Millisecond, nil)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg")
	r.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != customScene {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Setting nil should not change hooks
	SetSceneHooks(nil)
	if Scene() != customScene {
		t.Error("SetSceneHooks(nil) should not change hooks")
	}

	Reset()
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset() should restore NoopSceneHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testSceneHooks{}
	SetSceneHooks(h)

	Scene().OnPress("b1", "right")
	Scene().OnResync("b1", 2, nil)

	if len(h.presses) != 1 || h.presses[0] != "b1/right" {
		t.Errorf("presses = %v", h.presses)
	}
	if h.resynced != 2 {
		t.Errorf("resynced = %d, want 2", h.resynced)
	}
}

type testSceneHooks struct {
	NoopSceneHooks
	presses  []string
	resynced int
}

func (h *testSceneHooks) OnPress(id, button string) {
	h.presses = append(h.presses, id+"/"+button)
}

func (h *testSceneHooks) OnResync(_ string, wires int, _ error) {
	h.resynced += wires
}

type testRenderHooks struct {
	NoopRenderHooks
}
