// Package pango is the program's only cgo surface. It wraps just enough of
// cairo and pangocairo to render markup onto an in-memory xRGB image:
// the pixels are uploaded to the X server by pkg/bar, so no cairo X
// backend is involved and the X connection itself stays pure Go.
package pango

/*
#cgo pkg-config: pangocairo
#include <pango/pangocairo.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/lathbar/lath/pkg/errors"
)

// Surface is a fixed-size cairo image surface with a single reusable
// PangoLayout, mirroring the one-window-one-layout shape of the bar.
// It is not safe for concurrent use; the render loop owns it.
type Surface struct {
	surf   *C.cairo_surface_t
	cr     *C.cairo_t
	layout *C.PangoLayout
	width  int
	height int
}

// NewSurface creates the backing image surface and layout. fontDesc is a
// Pango font description string such as "Sans 12".
func NewSurface(width, height int, fontDesc string) (*Surface, error) {
	surf := C.cairo_image_surface_create(C.CAIRO_FORMAT_RGB24, C.int(width), C.int(height))
	if status := C.cairo_surface_status(surf); status != C.CAIRO_STATUS_SUCCESS {
		C.cairo_surface_destroy(surf)
		return nil, errors.Newf(errors.ErrRenderSurface, "cairo surface creation failed: %s",
			C.GoString(C.cairo_status_to_string(status)))
	}

	cr := C.cairo_create(surf)
	C.cairo_set_operator(cr, C.CAIRO_OPERATOR_SOURCE)

	opts := C.cairo_font_options_create()
	C.cairo_font_options_set_antialias(opts, C.CAIRO_ANTIALIAS_SUBPIXEL)
	C.cairo_set_font_options(cr, opts)
	C.cairo_font_options_destroy(opts)

	layout := C.pango_cairo_create_layout(cr)

	cdesc := C.CString(fontDesc)
	desc := C.pango_font_description_from_string(cdesc)
	C.free(unsafe.Pointer(cdesc))
	C.pango_layout_set_font_description(layout, desc)
	C.pango_font_description_free(desc)

	return &Surface{
		surf:   surf,
		cr:     cr,
		layout: layout,
		width:  width,
		height: height,
	}, nil
}

// Close releases the layout, context and surface. The Surface must not be
// used afterwards.
func (s *Surface) Close() {
	C.g_object_unref(C.gpointer(unsafe.Pointer(s.layout)))
	C.cairo_destroy(s.cr)
	C.cairo_surface_destroy(s.surf)
}

// SetSourceRGB sets the drawing color for subsequent Paint and ShowLayoutAt
// calls. Components are unit floats.
func (s *Surface) SetSourceRGB(r, g, b float64) {
	C.cairo_set_source_rgb(s.cr, C.double(r), C.double(g), C.double(b))
}

// Paint fills the whole surface with the current source color.
func (s *Surface) Paint() {
	C.cairo_paint(s.cr)
}

// SetMarkup loads a Pango markup string into the layout. The markup is
// validated first so malformed input surfaces as a coded error instead of
// a glib warning on stderr.
func (s *Surface) SetMarkup(markup string) error {
	cs := C.CString(markup)
	defer C.free(unsafe.Pointer(cs))

	var gerr *C.GError
	var attrs *C.PangoAttrList
	var text *C.char
	ok := C.pango_parse_markup(cs, -1, 0, &attrs, &text, nil, &gerr)
	if ok == 0 {
		msg := "unparseable markup"
		if gerr != nil {
			msg = C.GoString((*C.char)(unsafe.Pointer(gerr.message)))
			C.g_error_free(gerr)
		}
		return errors.Newf(errors.ErrRenderMarkup, "%s", msg)
	}
	C.pango_attr_list_unref(attrs)
	C.g_free(C.gpointer(unsafe.Pointer(text)))

	C.pango_layout_set_markup(s.layout, cs, -1)
	return nil
}

// SetText loads literal text into the layout, clearing any attributes left
// behind by a previous markup. Used as the fallback for bad markup.
func (s *Surface) SetText(text string) {
	cs := C.CString(text)
	defer C.free(unsafe.Pointer(cs))
	C.pango_layout_set_attributes(s.layout, nil)
	C.pango_layout_set_text(s.layout, cs, -1)
}

// PixelSize returns the rendered size of the current layout content.
func (s *Surface) PixelSize() (int, int) {
	C.pango_cairo_update_layout(s.cr, s.layout)
	var w, h C.int
	C.pango_layout_get_pixel_size(s.layout, &w, &h)
	return int(w), int(h)
}

// ShowLayoutAt draws the current layout content with its origin at (x, y).
func (s *Surface) ShowLayoutAt(x, y float64) {
	C.cairo_save(s.cr)
	C.cairo_translate(s.cr, C.double(x), C.double(y))
	C.pango_cairo_update_layout(s.cr, s.layout)
	C.pango_cairo_show_layout(s.cr, s.layout)
	C.cairo_restore(s.cr)
}

// Stride returns the surface row length in bytes.
func (s *Surface) Stride() int {
	return int(C.cairo_image_surface_get_stride(s.surf))
}

// Data returns a copy of the surface pixels, stride-packed xRGB rows, ready
// for a ZPixmap upload.
func (s *Surface) Data() []byte {
	C.cairo_surface_flush(s.surf)
	data := C.cairo_image_surface_get_data(s.surf)
	n := s.Stride() * s.height
	return C.GoBytes(unsafe.Pointer(data), C.int(n))
}

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}
