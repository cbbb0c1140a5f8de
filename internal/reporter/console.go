package reporter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/vk/gridtask/internal/result"
)

// Console prints human-readable progress lines.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	noColor bool
}

// NewConsole creates a console reporter writing to out. When noColor is set
// no ANSI escape sequences are emitted.
func NewConsole(out io.Writer, noColor bool) *Console {
	return &Console{out: out, noColor: noColor}
}

func (c *Console) paint(style color.Color, s string) string {
	if c.noColor {
		return s
	}
	return style.Sprint(s)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) OnStart(task string) {
	c.printf("Starting '%s'...\n", c.paint(color.Cyan, task))
}

func (c *Console) OnFinish(task string, outcome result.Outcome, duration time.Duration) {
	took := c.paint(color.Magenta, formatDuration(duration))
	if outcome == result.OutcomeFailure {
		c.printf("'%s' %s after %s\n", c.paint(color.Cyan, task), c.paint(color.Red, "errored"), took)
		return
	}
	c.printf("Finished '%s' after %s\n", c.paint(color.Cyan, task), took)
}

func (c *Console) OnFailureDetail(err error) {
	c.printf("%s %v\n", c.paint(color.Red, "Error:"), err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d μs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}
