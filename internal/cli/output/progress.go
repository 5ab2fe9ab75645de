package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar reports bytes moved through a transfer on a terminal line.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int64
	current int64
	width   int
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar writing to w. A total of zero or
// less shows a plain byte counter.
func NewProgressBar(w io.Writer, title string, total int64) *ProgressBar {
	return &ProgressBar{w: w, title: title, total: total, width: 30}
}

// Add records n more bytes.
func (p *ProgressBar) Add(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	p.render()
}

// Finish renders the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total > 0 {
		p.current = p.total
	}
	p.render()
	fmt.Fprintln(p.w)
}

// Writer wraps dst so every write advances the bar.
func (p *ProgressBar) Writer(dst io.Writer) io.Writer {
	return &progressWriter{dst: dst, bar: p}
}

// Reader wraps src so every read advances the bar.
func (p *ProgressBar) Reader(src io.Reader) io.Reader {
	return &progressReader{src: src, bar: p}
}

func (p *ProgressBar) render() {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %s", p.title, FormatBytes(p.current))
		return
	}

	ratio := min(float64(p.current)/float64(p.total), 1)
	filled := int(float64(p.width) * ratio)
	fmt.Fprintf(p.w, "\r%s [%s%s] %3.0f%% (%s/%s)",
		p.title,
		strings.Repeat("#", filled),
		strings.Repeat(".", p.width-filled),
		ratio*100,
		FormatBytes(p.current),
		FormatBytes(p.total),
	)
}

type progressWriter struct {
	dst io.Writer
	bar *ProgressBar
}

func (w *progressWriter) Write(b []byte) (int, error) {
	n, err := w.dst.Write(b)
	w.bar.Add(int64(n))
	return n, err
}

type progressReader struct {
	src io.Reader
	bar *ProgressBar
}

func (r *progressReader) Read(b []byte) (int, error) {
	n, err := r.src.Read(b)
	r.bar.Add(int64(n))
	return n, err
}

// FormatBytes formats b with a binary unit suffix.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
