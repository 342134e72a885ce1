package rowan

import (
	"fmt"
	"os"
)

// globalDebug gates the structural checks in tree operations. Off by
// default; flip it with SetDebugMode during development.
var globalDebug bool

// SetDebugMode toggles package-wide debug checks. When enabled, AddChild
// validates tree depth and child fan-out and warns on stderr when they
// exceed their thresholds.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return globalDebug
}

// debugWarnf prints a warning to stderr. Used for non-fatal conditions such
// as texture or font load failures, which are reported once and then
// silenced by the caller.
func debugWarnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n Noder) {
	depth := 0
	for p := n; p != nil; p = p.base().parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.base().name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: node %q has %d children (threshold %d)\n",
			n.name, len(n.children), debugMaxChildCount)
	}
}
