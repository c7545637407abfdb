package cli

import (
	"fmt"
	"io"
	"time"
)

// Timer reports the start and end of a step, like a verbose log.
type Timer struct {
	w     io.Writer
	label string
	start time.Time
}

// StartTimer begins timing label. A nil writer disables output.
func StartTimer(w io.Writer, label string) *Timer {
	t := &Timer{w: w, label: label, start: time.Now()}
	if w != nil {
		fmt.Fprintf(w, "%s %s started at %s\n", KeyStyle.Render("»"), label, t.start.Format(time.TimeOnly))
	}
	return t
}

// Stop prints the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.w != nil {
		fmt.Fprintf(t.w, "%s %s finished in %s\n", KeyStyle.Render("»"), t.label, FormatDuration(elapsed))
	}
	return elapsed
}
