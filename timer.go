package rowan

// SignalTimeout fires when a Timer's countdown reaches zero.
const SignalTimeout = "timeout"

// Timer is a node that counts down during Process and emits "timeout" when
// it reaches zero. One-shot timers stop there; repeating timers rewind and
// keep counting. The countdown obeys the usual process gating, so a hidden
// or disabled subtree pauses its timers.
type Timer struct {
	Node

	waitTime  float64
	oneShot   bool
	autostart bool
	paused    bool

	timeLeft float64
	running  bool
}

// NewTimer creates a stopped repeating timer with a one second wait.
func NewTimer(name string) *Timer {
	t := &Timer{}
	InitTimer(t, t, name)
	return t
}

// InitTimer wires the embedded Timer of a concrete node kind.
func InitTimer(t *Timer, self Noder, name string) {
	InitNode(&t.Node, self, name)
	t.waitTime = 1
}

// TypeName returns "Timer".
func (t *Timer) TypeName() string { return "Timer" }

// WaitTime returns the countdown duration in seconds.
func (t *Timer) WaitTime() float64 { return t.waitTime }

// SetWaitTime sets the countdown duration in seconds. Non-positive values
// are clamped to a minimal tick so a running timer still makes progress.
func (t *Timer) SetWaitTime(seconds float64) {
	if seconds <= 0 {
		seconds = 0.001
	}
	t.waitTime = seconds
}

// OneShot reports whether the timer stops after one timeout.
func (t *Timer) OneShot() bool { return t.oneShot }

// SetOneShot sets whether the timer stops after one timeout.
func (t *Timer) SetOneShot(oneShot bool) { t.oneShot = oneShot }

// Autostart reports whether the timer starts itself when readied.
func (t *Timer) Autostart() bool { return t.autostart }

// SetAutostart sets whether the timer starts itself when readied.
func (t *Timer) SetAutostart(autostart bool) { t.autostart = autostart }

// Paused reports whether the countdown is paused.
func (t *Timer) Paused() bool { return t.paused }

// SetPaused pauses or resumes the countdown without resetting it.
func (t *Timer) SetPaused(paused bool) { t.paused = paused }

// Start begins the countdown from the full wait time, restarting it if
// already running.
func (t *Timer) Start() {
	t.timeLeft = t.waitTime
	t.running = true
}

// Stop halts the countdown and clears the remaining time.
func (t *Timer) Stop() {
	t.running = false
	t.timeLeft = 0
}

// IsStopped reports whether the timer is not counting down.
func (t *Timer) IsStopped() bool { return !t.running }

// TimeLeft returns the seconds remaining, or 0 when stopped.
func (t *Timer) TimeLeft() float64 { return t.timeLeft }

// Ready starts the countdown when autostart is set.
func (t *Timer) Ready() {
	if t.autostart {
		t.Start()
	}
}

// Process advances the countdown. At zero it emits "timeout", then either
// stops (one-shot) or rewinds to the wait time. Kinds that embed Timer and
// override Process must call this implementation.
func (t *Timer) Process(delta float64) {
	if !t.running || t.paused {
		return
	}
	t.timeLeft -= delta
	if t.timeLeft > 0 {
		return
	}
	if t.oneShot {
		t.running = false
		t.timeLeft = 0
	} else {
		t.timeLeft += t.waitTime
		if t.timeLeft < 0 {
			t.timeLeft = t.waitTime
		}
	}
	t.EmitSignal(SignalTimeout)
}

// SaveToDict writes the timer keys after the base keys.
func (t *Timer) SaveToDict(dict map[string]Variant) {
	t.Node.SaveToDict(dict)
	dict["wait_time"] = VariantFloat(t.waitTime)
	dict["one_shot"] = VariantBool(t.oneShot)
	dict["autostart"] = VariantBool(t.autostart)
	dict["paused"] = VariantBool(t.paused)
}

// LoadFromDict applies the timer keys present in dict.
func (t *Timer) LoadFromDict(dict map[string]Variant) {
	t.Node.LoadFromDict(dict)
	if v, ok := dict["wait_time"]; ok {
		t.SetWaitTime(v.AsFloat())
	}
	if v, ok := dict["one_shot"]; ok {
		t.oneShot = v.AsBool()
	}
	if v, ok := dict["autostart"]; ok {
		t.autostart = v.AsBool()
	}
	if v, ok := dict["paused"]; ok {
		t.paused = v.AsBool()
	}
}
