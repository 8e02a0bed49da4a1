package styles

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	fontCharWidth = 0.55
	fontSizeMin   = 5.0
	ellipsis      = ".."
)

// TextWidth estimates the rendered width of s at size.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * fontCharWidth
}

// MaxChars returns how many characters fit into width at size.
func MaxChars(width, size float64) int {
	if width <= 0 || size <= 0 {
		return 0
	}
	return int(width/(size*fontCharWidth) + 1e-9)
}

// Truncate shortens s to fit width at size, marking the cut with "..".
// It returns "" when not even one character and the marker fit.
func Truncate(s string, width, size float64) string {
	n := MaxChars(width, size)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n < len(ellipsis)+1 {
		return ""
	}
	return truncate.StringWithTail(s, uint(n), ellipsis)
}

// FitSize returns the largest size not above size at which s fits width.
// It never goes below fontSizeMin; callers truncate what still does not fit.
func FitSize(s string, width, size float64) float64 {
	n := max(1, utf8.RuneCountInString(s))
	fit := width / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(size, fit))
}

// wrapChars breaks s into lines of at most n characters, preferring word
// boundaries.
func wrapChars(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}
	wrapped := wrap.String(wordwrap.String(s, n), n)
	var lines []string
	for _, l := range strings.Split(wrapped, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// WrapItems wraps each item as its own paragraph. The first line of an item
// starts with bullet and continuation lines are indented to match. At most
// maxLines lines are returned; when lines are dropped the last kept line
// ends in "..".
func WrapItems(items []string, bullet string, width, size float64, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	n := MaxChars(width, size)
	indent := utf8.RuneCountInString(bullet)
	if n-indent <= 0 {
		return nil
	}

	var lines []string
	for _, item := range items {
		for i, l := range wrapChars(item, n-indent) {
			if i == 0 {
				l = bullet + l
			} else {
				l = strings.Repeat(" ", indent) + l
			}
			lines = append(lines, l)
		}
	}
	if len(lines) <= maxLines {
		return lines
	}

	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if utf8.RuneCountInString(last)+len(ellipsis) > n {
		last = truncate.String(last, uint(max(0, n-len(ellipsis))))
	}
	lines[maxLines-1] = last + ellipsis
	return lines
}
