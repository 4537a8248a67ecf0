package tessera

import (
	"fmt"
	"os"
)

// globalDebug gates diagnostics. Set it once at startup, before any screen is
// built.
var globalDebug bool

// SetDebugMode enables diagnostics: render and merge timings, screen switches
// and tree size warnings are printed to stderr. Call it before building
// screens.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugLog prints one line to stderr when debug mode is on.
func debugLog(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[tessera] "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c *Component) {
	depth := 0
	for p := c; p != nil; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tessera] warning: tree depth %d exceeds %d (component %q)\n",
			depth, debugMaxTreeDepth, c.name)
	}
}

// debugCheckChildCount warns on stderr if a component has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Component) {
	if n := c.NumChildren(); n > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[tessera] warning: component %q has %d children (threshold %d)\n",
			c.name, n, debugMaxChildCount)
	}
}
