// Package render turns a parsed status line into bar pixels. The position
// arithmetic is kept in pure functions so it is testable without a text
// stack; the actual drawing goes through internal/pango.
package render

import (
	"github.com/rs/zerolog"

	"github.com/lathbar/lath/internal/pango"
	"github.com/lathbar/lath/pkg/config"
	"github.com/lathbar/lath/pkg/logging"
	"github.com/lathbar/lath/pkg/markup"
)

// Position returns the x offset of an aligned group. A group wider than
// the bar is clamped to the left edge and overflows off the right side.
func Position(a markup.Align, barWidth, textWidth int) int {
	var x int
	switch a {
	case markup.AlignCenter:
		x = (barWidth - textWidth) / 2
	case markup.AlignRight:
		x = barWidth - textWidth
	}
	if x < 0 {
		x = 0
	}
	return x
}

// VerticalOffset centers text of the given height inside the bar.
func VerticalOffset(barHeight, textHeight int) int {
	y := (barHeight - textHeight) / 2
	if y < 0 {
		y = 0
	}
	return y
}

// Renderer draws status lines onto its backing surface. It is owned by
// the bar's run loop and never shared.
type Renderer struct {
	surf      *pango.Surface
	width     int
	height    int
	separator string
	fg        [3]float64
	bg        [3]float64
	log       zerolog.Logger
}

// New creates a renderer for a bar of the given pixel width. Height, font
// and colors come from the validated config.
func New(width int, cfg config.Config) (*Renderer, error) {
	surf, err := pango.NewSurface(width, cfg.Height, cfg.FontDescription())
	if err != nil {
		return nil, err
	}

	fg := cfg.ForegroundColor()
	bg := cfg.BackgroundColor()

	return &Renderer{
		surf:      surf,
		width:     width,
		height:    cfg.Height,
		separator: cfg.Separator,
		fg:        [3]float64{fg.R, fg.G, fg.B},
		bg:        [3]float64{bg.R, bg.G, bg.B},
		log:       logging.GetLogger("render"),
	}, nil
}

// Draw renders one parsed line: background first, then the three alignment
// groups in draw order, each measured and placed independently. It returns
// the surface pixels for upload.
func (r *Renderer) Draw(line markup.Line) []byte {
	r.surf.SetSourceRGB(r.bg[0], r.bg[1], r.bg[2])
	r.surf.Paint()

	for _, align := range markup.Aligns {
		group := line.Group(align, r.separator)
		if group == "" {
			continue
		}
		r.drawGroup(align, group)
	}

	return r.surf.Data()
}

func (r *Renderer) drawGroup(align markup.Align, group string) {
	if err := r.surf.SetMarkup(group); err != nil {
		// Bad markup never kills the bar; show the text as-is.
		r.log.Warn().Err(err).Str("align", align.String()).Msg("Malformed markup, rendering literally")
		r.surf.SetText(group)
	}

	w, h := r.surf.PixelSize()
	x := Position(align, r.width, w)
	y := VerticalOffset(r.height, h)

	r.surf.SetSourceRGB(r.fg[0], r.fg[1], r.fg[2])
	r.surf.ShowLayoutAt(float64(x), float64(y))

	r.log.Trace().
		Str("align", align.String()).
		Int("x", x).
		Int("y", y).
		Int("width", w).
		Msg("Group placed")
}

// Stride returns the byte length of one pixel row in Draw's output.
func (r *Renderer) Stride() int {
	return r.surf.Stride()
}

// Size returns the bar dimensions in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Close releases the backing surface.
func (r *Renderer) Close() {
	r.surf.Close()
}
