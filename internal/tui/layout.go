package tui

import "github.com/Iron-Ham/evolution/internal/viewstate"

// Layout constants
const (
	statusBarHeight       = 1
	thumbnailHeight       = 4 // border + title + one preview row
	DefaultThumbnailWidth = 18
	cameraShareNum        = 3 // camera gets 3/5 of the width in the default view
	cameraShareDen        = 5
)

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return !r.empty() && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// zones is where each slot is drawn for one frame. Rendering and mouse hit
// testing share it.
type zones struct {
	camera rect
	tech   rect
	thumbs []rect // one per visible thumbnail, in thumbnail order
}

// computeZones lays the slots out for the terminal size and view state.
// Thumbnails that do not fit on the strip are not given a zone.
func computeZones(width, height int, state viewstate.State, thumbCount, thumbWidth int) zones {
	var z zones
	contentH := height - statusBarHeight
	if width <= 0 || contentH <= 0 {
		return z
	}
	if thumbWidth <= 0 {
		thumbWidth = DefaultThumbnailWidth
	}

	switch state {
	case viewstate.CameraFullscreen:
		z.camera = rect{0, 0, width, contentH}
	case viewstate.TechFullscreen:
		z.tech = rect{0, 0, width, contentH}
	case viewstate.Default:
		mainH := contentH - thumbnailHeight
		if mainH <= 0 {
			return z
		}
		camW := width * cameraShareNum / cameraShareDen
		z.camera = rect{0, 0, camW, mainH}
		z.tech = rect{camW, 0, width - camW, mainH}
		for i := range thumbCount {
			x := i * thumbWidth
			if x+thumbWidth > width {
				break
			}
			z.thumbs = append(z.thumbs, rect{x, mainH, thumbWidth, thumbnailHeight})
		}
	}
	return z
}
