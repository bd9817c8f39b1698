package level

import (
	"fmt"
	"strings"
)

// Diagnostic describes one problem found while materializing a level.
// Dropped records were not created; the others were created with a
// fallback value.
type Diagnostic struct {
	Section string
	Index   int // -1 for section-level problems
	Err     error
	Dropped bool
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Section)
	if d.Index >= 0 {
		fmt.Fprintf(&b, "[%d]", d.Index)
	}
	b.WriteString(": ")
	b.WriteString(d.Err.Error())
	if d.Dropped {
		b.WriteString(" (record dropped)")
	}
	return b.String()
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Report summarises a materialization.
type Report struct {
	Level       string
	Obstacles   int
	Hazards     int
	Launchers   int
	Boxes       int
	Diagnostics []Diagnostic
}

// Dropped returns the number of records that were not created.
func (r *Report) Dropped() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Dropped {
			n++
		}
	}
	return n
}

// OK reports whether the level loaded without diagnostics.
func (r *Report) OK() bool {
	return len(r.Diagnostics) == 0
}

func (r *Report) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}
