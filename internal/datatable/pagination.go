package datatable

// MaxPageButtons is the width of the page-number strip.
const MaxPageButtons = 5

// Nav reports which of the first/previous/next/last controls are enabled.
type Nav struct {
	First bool
	Prev  bool
	Next  bool
	Last  bool
}

// PageCount returns ceil(total/size), or 0 for a non-positive size.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageWindow returns the page numbers to show around current: centered when
// possible and shifted left near the end, never more than MaxPageButtons.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	start := max(0, min(current-2, total-MaxPageButtons))
	end := min(total-1, start+MaxPageButtons-1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Navigation returns the enabled navigation controls for current of total.
func Navigation(current, total int) Nav {
	back := total > 0 && current > 0
	forward := total > 0 && current < total-1
	return Nav{First: back, Prev: back, Next: forward, Last: forward}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
