package bar

// Indexes into the _NET_WM_STRUT_PARTIAL array. The full layout is
// {left, right, top, bottom, left_start_y, left_end_y, right_start_y,
// right_end_y, top_start_x, top_end_x, bottom_start_x, bottom_end_x}.
const (
	strutTop         = 2
	strutBottom      = 3
	strutTopEndX     = 9
	strutBottomEndX  = 11
	strutPartialSize = 12
)

// StrutValues builds the _NET_WM_STRUT_PARTIAL array reserving a
// full-width band of the given height at the top or bottom screen edge.
// The first four values double as the legacy _NET_WM_STRUT property.
func StrutValues(bottom bool, height, screenWidth int) [strutPartialSize]uint {
	var strut [strutPartialSize]uint
	if bottom {
		strut[strutBottom] = uint(height)
		strut[strutBottomEndX] = uint(screenWidth)
	} else {
		strut[strutTop] = uint(height)
		strut[strutTopEndX] = uint(screenWidth)
	}
	return strut
}

// OpacityCardinal converts a unit opacity into the 32-bit cardinal the
// compositor expects in _NET_WM_WINDOW_OPACITY.
func OpacityCardinal(opacity float64) uint32 {
	return uint32(opacity * 0xFFFFFFFF)
}
