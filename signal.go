package rowan

// SignalCallback receives the arguments passed to Signal.Emit.
type SignalCallback func(args ...Variant)

// Signal is a named, synchronous event source. Listeners run in connection
// order on the goroutine that calls Emit. Signals are not safe for
// concurrent use; nodes and their signals belong to the update goroutine.
type Signal struct {
	name      string
	listeners []SignalCallback
}

// NewSignal creates an empty signal with the given name.
func NewSignal(name string) *Signal {
	return &Signal{name: name}
}

// Name returns the signal's name.
func (s *Signal) Name() string {
	return s.name
}

// Connect appends fn to the listener list. The same function may be
// connected more than once and will run once per connection. Nil callbacks
// are ignored.
func (s *Signal) Connect(fn SignalCallback) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// Emit calls every listener in connection order with the given arguments.
// The listener list is captured at entry: connections or disconnections made
// by a listener take effect on the next emission, so emitting from inside a
// listener cannot skip or double-call anyone.
func (s *Signal) Emit(args ...Variant) {
	listeners := s.listeners
	for _, fn := range listeners {
		fn(args...)
	}
}

// DisconnectAll removes every listener.
func (s *Signal) DisconnectAll() {
	s.listeners = nil
}

// ConnectionCount returns the number of connected listeners.
func (s *Signal) ConnectionCount() int {
	return len(s.listeners)
}
