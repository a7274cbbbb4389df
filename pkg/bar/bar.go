// Package bar owns the X11 side of lath: the dock window, its EWMH
// properties, the backing pixmap and the stdin-driven run loop. All X
// traffic goes through the pure-Go xgb binding; pixels arrive pre-rendered
// from pkg/render and are uploaded with PutImage.
package bar

import (
	"bufio"
	"io"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xprop"
	"github.com/jezek/xgbutil/xwindow"
	"github.com/rs/zerolog"

	"github.com/lathbar/lath/pkg/config"
	"github.com/lathbar/lath/pkg/errors"
	"github.com/lathbar/lath/pkg/logging"
	"github.com/lathbar/lath/pkg/markup"
	"github.com/lathbar/lath/pkg/render"
)

const wmName = "lath"

// putImageChunk bounds the pixel payload of a single PutImage request so
// uploads stay under the core protocol's maximum request length.
const putImageChunk = 65536 * 3

// Bar is the dock window plus everything needed to redraw it. It is
// created once and owned by a single run loop for the process lifetime.
type Bar struct {
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	rend   *render.Renderer
	cfg    config.Config
	width  int
	log    zerolog.Logger
}

// New connects to the X server, creates the bar window spanning the full
// screen width at the configured edge, applies the dock properties and
// prepares the renderer and backing pixmap. The window is mapped before
// returning.
func New(cfg config.Config) (*Bar, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDisplayConnect, "cannot connect to X server")
	}

	screen := xu.Screen()
	width := int(screen.WidthInPixels)
	y := 0
	if cfg.Bottom {
		y = int(screen.HeightInPixels) - cfg.Height
	}

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, errors.ErrWindowCreate, "cannot allocate window id")
	}
	err = win.CreateChecked(xu.RootWin(), 0, y, width, cfg.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		screen.BlackPixel, xproto.EventMaskExposure)
	if err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, errors.ErrWindowCreate, "cannot create bar window")
	}

	b := &Bar{
		xu:    xu,
		win:   win,
		cfg:   cfg,
		width: width,
		log:   logging.GetLogger("bar"),
	}

	if err := b.setDockProperties(); err != nil {
		b.teardownX()
		return nil, err
	}

	pixmap, err := xproto.NewPixmapId(xu.Conn())
	if err != nil {
		b.teardownX()
		return nil, errors.Wrap(err, errors.ErrWindowCreate, "cannot allocate pixmap id")
	}
	b.pixmap = pixmap
	xproto.CreatePixmap(xu.Conn(), screen.RootDepth, pixmap,
		xproto.Drawable(xu.RootWin()), uint16(width), uint16(cfg.Height))

	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		b.teardownX()
		return nil, errors.Wrap(err, errors.ErrWindowCreate, "cannot allocate graphics context id")
	}
	b.gc = gc
	xproto.CreateGC(xu.Conn(), gc, xproto.Drawable(pixmap),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{screen.BlackPixel, screen.WhitePixel})

	rend, err := render.New(width, cfg)
	if err != nil {
		b.teardownX()
		return nil, err
	}
	b.rend = rend

	// Fill the pixmap with the background so the first expose does not
	// flash uninitialized contents.
	b.blit(rend.Draw(markup.Line{}))

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		b.copyToWindow()
	}).Connect(xu, win.Id)

	win.Map()

	b.log.Info().
		Int("width", width).
		Int("height", cfg.Height).
		Bool("bottom", cfg.Bottom).
		Msg("Bar mapped")

	return b, nil
}

// setDockProperties applies the EWMH surface of the bar: names, dock type,
// above+sticky state, all-desktops, struts and optional opacity.
func (b *Bar) setDockProperties() error {
	xu, win := b.xu, b.win.Id

	if err := ewmh.WmNameSet(xu, win, wmName); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_NAME")
	}
	if err := ewmh.WmIconNameSet(xu, win, wmName); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_ICON_NAME")
	}
	if err := icccm.WmClassSet(xu, win, &icccm.WmClass{Instance: wmName, Class: wmName}); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "WM_CLASS")
	}
	if err := ewmh.WmWindowTypeSet(xu, win, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_WINDOW_TYPE")
	}
	if err := ewmh.WmStateSet(xu, win, []string{"_NET_WM_STATE_ABOVE", "_NET_WM_STATE_STICKY"}); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_STATE")
	}
	if err := ewmh.WmDesktopSet(xu, win, 0xFFFFFFFF); err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_DESKTOP")
	}

	strut := StrutValues(b.cfg.Bottom, b.cfg.Height, b.width)
	err := ewmh.WmStrutPartialSet(xu, win, &ewmh.WmStrutPartial{
		Left: strut[0], Right: strut[1], Top: strut[2], Bottom: strut[3],
		LeftStartY: strut[4], LeftEndY: strut[5],
		RightStartY: strut[6], RightEndY: strut[7],
		TopStartX: strut[8], TopEndX: strut[9],
		BottomStartX: strut[10], BottomEndX: strut[11],
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_STRUT_PARTIAL")
	}
	err = ewmh.WmStrutSet(xu, win, &ewmh.WmStrut{
		Left: strut[0], Right: strut[1], Top: strut[2], Bottom: strut[3],
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_STRUT")
	}

	if b.cfg.Opacity != 1.0 {
		err = xprop.ChangeProp32(xu, win, "_NET_WM_WINDOW_OPACITY", "CARDINAL",
			uint(OpacityCardinal(b.cfg.Opacity)))
		if err != nil {
			return errors.Wrap(err, errors.ErrWindowProperty, "_NET_WM_WINDOW_OPACITY")
		}
	}

	return nil
}

// Run processes input lines until EOF, one synchronous render per line.
// X events are serviced by xgbutil's event loop; the renderer and pixmap
// stay owned by this loop.
func (b *Bar) Run(input io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(input)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	go xevent.Main(b.xu)

	for line := range lines {
		start := time.Now()
		b.renderLine(line)
		logging.LogDuration(b.log, start, "draw")
	}

	b.log.Info().Msg("Input closed, shutting down")
	return <-scanErr
}

// renderLine is the whole per-line pipeline: parse, draw, upload, copy.
func (b *Bar) renderLine(raw string) {
	line := markup.Parse(raw)
	b.blit(b.rend.Draw(line))
}

// blit uploads rendered pixels to the pixmap and copies them onto the
// window.
func (b *Bar) blit(data []byte) {
	b.upload(data, b.rend.Stride())
	b.copyToWindow()
}

// upload writes stride-packed xRGB rows into the pixmap, a band of rows
// per request to respect the X maximum request length.
func (b *Bar) upload(data []byte, stride int) {
	rowBytes := b.width * 4
	rowsPerChunk := putImageChunk / rowBytes
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}

	height := b.cfg.Height
	for y := 0; y < height; y += rowsPerChunk {
		rows := rowsPerChunk
		if y+rows > height {
			rows = height - y
		}

		chunk := make([]byte, rows*rowBytes)
		for i := 0; i < rows; i++ {
			copy(chunk[i*rowBytes:(i+1)*rowBytes], data[(y+i)*stride:(y+i)*stride+rowBytes])
		}

		xproto.PutImage(b.xu.Conn(), xproto.ImageFormatZPixmap,
			xproto.Drawable(b.pixmap), b.gc,
			uint16(b.width), uint16(rows), 0, int16(y),
			0, b.xu.Screen().RootDepth, chunk)
	}
}

// copyToWindow blits the backing pixmap onto the window. Also invoked on
// Expose so the last frame survives unmap/remap and damage.
func (b *Bar) copyToWindow() {
	xproto.CopyArea(b.xu.Conn(), xproto.Drawable(b.pixmap),
		xproto.Drawable(b.win.Id), b.gc,
		0, 0, 0, 0, uint16(b.width), uint16(b.cfg.Height))
}

// Close stops the event loop and releases X and renderer resources.
func (b *Bar) Close() {
	if b.rend != nil {
		b.rend.Close()
	}
	xevent.Quit(b.xu)
	xproto.FreeGC(b.xu.Conn(), b.gc)
	xproto.FreePixmap(b.xu.Conn(), b.pixmap)
	b.teardownX()
}

func (b *Bar) teardownX() {
	b.win.Destroy()
	b.xu.Conn().Close()
}
