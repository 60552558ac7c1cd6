package lcdkit

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Button int    `json:"button,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected button events and screenshots across ticks
// for automated testing on real or emulated panels. Attach to a Frame via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Frame via SetTestRunner.
//
//	{"steps": [
//		{"action": "click", "button": 3},
//		{"action": "wait", "frames": 2},
//		{"action": "screenshot", "label": "second-page"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "click":
			if st.Button < 0 || st.Button >= MaxButtons {
				return nil, fmt.Errorf("parse test script: step %d: button %d out of range", i, st.Button)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the frame. The runner's step method
// is called at the start of every Tick.
func (f *Frame) SetTestRunner(runner *TestRunner) {
	f.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one tick. Called from Frame.Tick.
func (r *TestRunner) step(f *Frame) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(f.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		f.Screenshot(st.Label)
	case "press":
		f.InjectPress(Button(st.Button))
	case "release":
		f.InjectRelease(Button(st.Button))
	case "click":
		f.InjectClick(Button(st.Button))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(f.injectQueue) == 0 {
		r.done = true
	}
}
