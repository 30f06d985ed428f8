package render

import (
	"fmt"
	"io"

	"github.com/ttacon/chalk"

	"github.com/katalvlaran/pairviz/trace"
)

// TextRenderer prints one line per step to a terminal.
type TextRenderer struct {
	w       io.Writer
	color   bool
	applied int
}

// NewTextRenderer writes to w; color enables ANSI escapes.
func NewTextRenderer(w io.Writer, color bool) *TextRenderer {
	return &TextRenderer{w: w, color: color}
}

// Apply prints the message for step, prefixed with its index.
func (t *TextRenderer) Apply(step trace.Step) {
	if step == nil {
		return
	}
	t.applied++
	fmt.Fprintf(t.w, "%4d  %s\n", t.applied, t.paint(step.Kind(), trace.Describe(step)))
}

// Replay prints a rewind marker followed by the message of the last step
// of the prefix.
func (t *TextRenderer) Replay(steps []trace.Step) {
	t.applied = len(steps)
	marker := fmt.Sprintf("rewind to step %d", len(steps))
	if t.color {
		marker = chalk.Dim.TextStyle(marker)
	}
	fmt.Fprintf(t.w, "  ⟲   %s\n", marker)
	if len(steps) == 0 {
		fmt.Fprintf(t.w, "%4d  %s\n", 0, trace.Describe(nil))
		return
	}
	last := steps[len(steps)-1]
	fmt.Fprintf(t.w, "%4d  %s\n", t.applied, t.paint(last.Kind(), trace.Describe(last)))
}

func (t *TextRenderer) paint(k trace.Kind, msg string) string {
	if !t.color {
		return msg
	}
	switch k {
	case trace.KindStart, trace.KindSummary:
		return chalk.Bold.TextStyle(chalk.Green.Color(msg))
	case trace.KindDivide:
		return chalk.Blue.Color(msg)
	case trace.KindBaseCase, trace.KindResult:
		return chalk.Cyan.Color(msg)
	case trace.KindCompare:
		return chalk.Yellow.Color(msg)
	case trace.KindStrip:
		return chalk.Magenta.Color(msg)
	case trace.KindCombine, trace.KindFinal:
		return chalk.Green.Color(msg)
	}
	return msg
}
