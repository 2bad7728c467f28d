package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar reports completed requests out of a known total.
//
// Redraws are throttled so that high request rates do not flood the
// terminal.
type ProgressBar struct {
	w        io.Writer
	title    string
	total    int64
	current  int64
	failed   int64
	width    int
	interval time.Duration
	last     time.Time
	mu       sync.Mutex
}

// NewProgressBar creates a progress bar for total requests.
func NewProgressBar(w io.Writer, title string, total int64) *ProgressBar {
	return &ProgressBar{
		w:        w,
		title:    title,
		total:    total,
		width:    30,
		interval: 100 * time.Millisecond,
	}
}

// Add records one finished request.
func (p *ProgressBar) Add(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	if !ok {
		p.failed++
	}
	if now := time.Now(); now.Sub(p.last) >= p.interval {
		p.last = now
		p.render()
	}
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render() {
	percent := 1.0
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total)
	}
	if percent > 1 {
		percent = 1
	}

	filled := int(float64(p.width) * percent)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", p.width-filled)
	fmt.Fprintf(p.w, "\r%s [%s] %3.0f%% (%d/%d, %d failed)",
		p.title, bar, percent*100, p.current, p.total, p.failed)
}
