// Package markup splits status lines on the inline alignment markers
// ^l, ^c and ^r. The text of each section is Pango markup and is passed
// through untouched; only the two-character markers are interpreted.
package markup

import "strings"

// Align identifies one of the three horizontal alignment groups of the bar.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Aligns lists the groups in draw order: left first, right last, so later
// groups win when the text overflows and overlaps.
var Aligns = []Align{AlignLeft, AlignCenter, AlignRight}

// Line holds the markup sections of one input line grouped by alignment.
// It is ephemeral; a new Line is produced per input line and discarded
// after the render.
type Line struct {
	sections [3][]string
}

// Parse splits a raw input line on '^'. A section whose first rune is
// 'l', 'c' or 'r' joins that alignment group with the marker stripped.
// Text before the first marker is treated as left-aligned. Sections with
// any other leading rune are dropped.
func Parse(s string) Line {
	var l Line
	parts := strings.Split(s, "^")
	for i, section := range parts {
		if section == "" {
			continue
		}
		if i == 0 {
			// No marker seen yet, default alignment.
			l.sections[AlignLeft] = append(l.sections[AlignLeft], section)
			continue
		}
		switch section[0] {
		case 'l':
			l.sections[AlignLeft] = append(l.sections[AlignLeft], section[1:])
		case 'c':
			l.sections[AlignCenter] = append(l.sections[AlignCenter], section[1:])
		case 'r':
			l.sections[AlignRight] = append(l.sections[AlignRight], section[1:])
		}
	}
	return l
}

// Sections returns the raw markup sections of one alignment group.
func (l Line) Sections(a Align) []string {
	return l.sections[a]
}

// Group joins an alignment group's sections with the configured separator
// into the single markup string handed to the layout engine. An empty
// string means there is nothing to draw for this group.
func (l Line) Group(a Align, sep string) string {
	return strings.Join(l.sections[a], sep)
}

// Empty reports whether the line produced no renderable sections at all.
func (l Line) Empty() bool {
	for _, g := range l.sections {
		if len(g) > 0 {
			return false
		}
	}
	return true
}
