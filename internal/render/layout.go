package render

// Layout positions line layers on the canvas. The last line sits just above
// the bottom margin and each earlier line stacks one slot higher.
type Layout struct {
	Width        int
	Height       int
	LineHeight   int
	LineGap      int
	MarginBottom int
	SideMargin   int
}

// ContentWidth is the text box width between the side margins.
func (l Layout) ContentWidth() int {
	return l.Width - 2*l.SideMargin
}

// LineY is the top edge of line idx out of n:
// height - margin_bottom - (n - idx) * (line_height + line_gap).
func (l Layout) LineY(idx, n int) int {
	return l.Height - l.MarginBottom - (n-idx)*(l.LineHeight+l.LineGap)
}

// LineX is the left edge of every line's text box.
func (l Layout) LineX() int {
	return (l.Width - l.ContentWidth()) / 2
}
