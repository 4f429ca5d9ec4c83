package pipeline

import "time"

// DocumentReport describes one written document.
type DocumentReport struct {
	Dir      string
	Path     string
	Sections int
	Changed  bool
	Digest   string
}

// Report summarizes a generation run.
type Report struct {
	RunID     string
	Documents []DocumentReport
	Duration  time.Duration
}

// Changed counts documents whose content changed.
func (r *Report) Changed() int {
	n := 0
	for _, d := range r.Documents {
		if d.Changed {
			n++
		}
	}
	return n
}
