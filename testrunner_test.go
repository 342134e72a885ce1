package rowan

import (
	"strings"
	"testing"
)

func newRunnerEngine(t *testing.T, script string) (*Engine, *fakeSink, *TestRunner) {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	e := NewEngine(EngineConfig{FixedDelta: 100})
	sink := &fakeSink{}
	e.SetEventSink(sink)
	e.SetTestRunner(runner)
	return e, sink, runner
}

// --- Parsing ---

func TestLoadTestScriptErrors(t *testing.T) {
	if _, err := LoadTestScript([]byte("{not json")); err == nil {
		t.Error("malformed JSON should fail")
	}

	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Errorf("empty script error = %v", err)
	}

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	if err != nil || runner == nil {
		t.Fatalf("valid script failed: %v", err)
	}
	if runner.Done() {
		t.Error("a fresh runner should not be done")
	}
}

// --- Stepping ---

func TestRunnerClickInjectsOverFrames(t *testing.T) {
	e, sink, runner := newRunnerEngine(t, `{"steps": [{"action": "click", "x": 10, "y": 20}]}`)

	e.Update(0.016) // executes the click, consumes the press
	if len(sink.events) != 1 || sink.events[0].Type != EventMouseButtonPress {
		t.Fatalf("frame 1 events = %+v", sink.events)
	}
	assertVec2Near(t, "press position", sink.events[0].Position, Vec2{10, 20})
	if runner.Done() {
		t.Fatal("runner should wait for the queue to drain")
	}

	e.Update(0.016) // consumes the release
	if len(sink.events) != 2 || sink.events[1].Type != EventMouseButtonRelease {
		t.Fatalf("frame 2 events = %+v", sink.events)
	}
	if runner.Done() {
		t.Fatal("done flags only after a drained frame")
	}

	e.Update(0.016)
	if !runner.Done() {
		t.Error("runner should finish once the queue drains")
	}
}

func TestRunnerWaitCountsFrames(t *testing.T) {
	e, sink, _ := newRunnerEngine(t,
		`{"steps": [{"action": "wait", "frames": 3}, {"action": "key", "key": 65}]}`)

	for frame := 1; frame <= 3; frame++ {
		e.Update(0.016)
		if len(sink.events) != 0 {
			t.Fatalf("frame %d: key leaked through the wait", frame)
		}
	}

	e.Update(0.016) // wait expired: the key press lands this frame
	if len(sink.events) != 1 || sink.events[0].Type != EventKeyPress || sink.events[0].Key != Key(65) {
		t.Fatalf("frame 4 events = %+v", sink.events)
	}

	e.Update(0.016)
	if len(sink.events) != 2 || sink.events[1].Type != EventKeyRelease {
		t.Fatalf("frame 5 events = %+v", sink.events)
	}
}

func TestRunnerScreenshotCallback(t *testing.T) {
	e, _, runner := newRunnerEngine(t, `{"steps": [{"action": "screenshot", "label": "boot"}]}`)

	var labels []string
	runner.OnScreenshot = func(label string) { labels = append(labels, label) }

	e.Update(0.016)
	assertLog(t, labels, "boot")
	if !runner.Done() {
		t.Error("a lone screenshot finishes in one frame")
	}
}

func TestRunnerScreenshotWithoutCallback(t *testing.T) {
	e, _, runner := newRunnerEngine(t, `{"steps": [{"action": "screenshot", "label": "x"}]}`)
	e.Update(0.016) // no callback attached; must not panic
	if !runner.Done() {
		t.Error("runner should finish")
	}
}

func TestRunnerDragDrainsBeforeNextStep(t *testing.T) {
	e, sink, runner := newRunnerEngine(t, `{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 30, "toY": 0, "frames": 4},
		{"action": "key", "key": 32}
	]}`)

	// The drag queues press, two moves, release; one event lands per frame.
	for frame := 1; frame <= 4; frame++ {
		e.Update(0.016)
		if len(sink.events) != frame {
			t.Fatalf("frame %d: events = %d", frame, len(sink.events))
		}
	}
	wantTypes := []InputEventType{EventMouseButtonPress, EventMouseMove, EventMouseMove, EventMouseButtonRelease}
	for i, want := range wantTypes {
		if sink.events[i].Type != want {
			t.Fatalf("events[%d].Type = %d, want %d", i, sink.events[i].Type, want)
		}
	}

	e.Update(0.016) // key executes only after the drag drained
	if len(sink.events) != 5 || sink.events[4].Type != EventKeyPress {
		t.Fatalf("frame 5 events = %+v", sink.events)
	}

	e.Update(0.016) // key release
	e.Update(0.016) // drained: done
	if !runner.Done() {
		t.Error("runner should finish after both steps drain")
	}
}

func TestRunnerStopsAfterDone(t *testing.T) {
	e, sink, runner := newRunnerEngine(t, `{"steps": [{"action": "key", "key": 65}]}`)

	for i := 0; i < 6; i++ {
		e.Update(0.016)
	}
	if !runner.Done() {
		t.Fatal("runner should be done")
	}
	if len(sink.events) != 2 {
		t.Errorf("events = %d, want exactly one tap", len(sink.events))
	}
}
