package audit

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// WriteTo writes the report as plain text
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	return r.write(w, fmt.Sprint)
}

// WriteColored writes the report with headings rendered in c.
// Colors are only emitted while c (or the color package) has color enabled.
func (r *Report) WriteColored(w io.Writer, c *color.Color) (int64, error) {
	return r.write(w, c.Sprint)
}

// Total returns the number of reported lines across sections
func (r *Report) Total() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Lines)
	}
	return total
}

func (r *Report) write(w io.Writer, heading func(...interface{}) string) (int64, error) {
	var written int64
	for i, s := range r.Sections {
		if i > 0 {
			n, err := fmt.Fprintln(w)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}

		n, err := fmt.Fprintln(w, heading(s.Heading))
		written += int64(n)
		if err != nil {
			return written, err
		}

		for _, line := range s.Lines {
			n, err := fmt.Fprintln(w, line)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
