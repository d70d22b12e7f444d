package ui

import (
	"fmt"
	"strings"
)

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// pad right-pads s with spaces to width, truncating when longer.
func pad(s string, width int) string {
	s = truncate(s, width)
	if len([]rune(s)) < width {
		s += strings.Repeat(" ", width-len([]rune(s)))
	}
	return s
}

// orDash substitutes "-" for empty values in list cells.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// fieldLabel turns a wire field name into a display label:
// "cross_border_location" -> "Cross Border Location".
func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// pageCount computes the number of pages for total items at the given limit.
func pageCount(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// pageStatus renders "Page x of y" for list footers.
func pageStatus(page, total, limit int) string {
	return fmt.Sprintf("Page %d of %d", page, pageCount(total, limit))
}
