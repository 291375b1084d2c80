package debug

import (
	"fmt"
	"strings"
)

// Overlay collects text lines for the on-screen debug display.
type Overlay struct {
	lines []string
}

func (o *Overlay) AddLine(format string, args ...interface{}) {
	o.lines = append(o.lines, fmt.Sprintf(format, args...))
}

func (o *Overlay) Clear() {
	o.lines = o.lines[:0]
}

func (o *Overlay) Lines() []string {
	return o.lines
}

func (o *Overlay) Text() string {
	if len(o.lines) == 0 {
		return ""
	}
	return strings.Join(o.lines, "\n") + "\n"
}
