package surface

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/Iron-Ham/evolution/internal/sensor"
)

const (
	meterRunes = "▁▂▃▄▅▆▇█"
	shadeRunes = " .:-=+*#%@"
)

// block pads or clips lines into exactly width x height cells.
func block(lines []string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		out[i] = string(runes) + strings.Repeat(" ", width-len(runes))
	}
	return strings.Join(out, "\n")
}

func paused(kind Kind, width, height int) string {
	return block([]string{fmt.Sprintf("[%s paused]", kind)}, width, height)
}

// sample returns values[i*len/n] so that any width maps onto the reading.
func sample(values []float64, i, n int) float64 {
	if len(values) == 0 || n <= 0 {
		return 0
	}
	return values[i*len(values)/n]
}

func pick(palette string, v float64) string {
	runes := []rune(palette)
	idx := int(v * float64(len(runes)-1))
	idx = max(0, min(idx, len(runes)-1))
	return string(runes[idx])
}

type audioSurface struct{ *base }

func (s *audioSurface) Render(width, height int) string {
	r, ok := s.frame()
	if !ok {
		return paused(s.kind, width, height)
	}
	var meter strings.Builder
	var sum float64
	for i := range width {
		v := sample(r.Values, i, width)
		sum += v
		meter.WriteString(pick(meterRunes, v))
	}
	level := 0.0
	if width > 0 {
		level = sum / float64(width)
	}
	beam := int(level*180) - 90
	return block([]string{
		meter.String(),
		fmt.Sprintf("level %3.0f%%  beam %+d°", level*100, beam),
	}, width, height)
}

type bodySurface struct{ *base }

func (s *bodySurface) Render(width, height int) string {
	r, ok := s.frame()
	if !ok {
		return paused(s.kind, width, height)
	}
	lean := sample(r.Values, 0, 1)
	arms := `\|/`
	if lean > 0.66 {
		arms = `-|\`
	} else if lean < 0.33 {
		arms = `/|-`
	}
	return block([]string{
		" o ",
		arms,
		"/ \\",
		fmt.Sprintf("tracked 1  frame %d", r.Seq),
	}, width, height)
}

type rotationSurface struct{ *base }

var compass = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

func (s *rotationSurface) Render(width, height int) string {
	r, ok := s.frame()
	if !ok {
		return paused(s.kind, width, height)
	}
	yaw := sample(r.Values, 0, 1)*360 - 180
	pitch := sample(r.Values, 5, 16)*90 - 45
	dir := compass[int(math.Mod(yaw+360+22.5, 360)/45)%len(compass)]
	return block([]string{
		fmt.Sprintf("%s yaw %+4.0f°", dir, yaw),
		fmt.Sprintf("  pitch %+3.0f°", pitch),
	}, width, height)
}

type depthSurface struct{ *base }

func (s *depthSurface) Render(width, height int) string {
	r, ok := s.frame()
	if !ok {
		return paused(s.kind, width, height)
	}
	return block(shadeGrid(r.Values, shadeRunes, width, height), width, height)
}

func shadeGrid(values []float64, palette string, width, height int) []string {
	lines := make([]string, height)
	for y := range height {
		var b strings.Builder
		for x := range width {
			v := (sample(values, x, width) + sample(values, y, height)) / 2
			b.WriteString(pick(palette, v))
		}
		lines[y] = b.String()
	}
	return lines
}

// Camera palettes per mode name. Unknown modes fall back to depth shading.
var cameraPalettes = map[string]string{
	"depth":              shadeRunes,
	"infrared":           " ░▒▓█",
	"color":              " .oO@",
	"color+infrared":     " .░o▒O▓@",
	"color-registration": " ·+x#",
	"depth-ramp":         " 123456789",
}

// Camera is the always-visible source feed surface. Its mode selects the
// palette used to draw depth readings.
type Camera struct {
	*base
	modeMu sync.Mutex
	mode   string
}

// NewCamera creates a camera surface in depth mode.
func NewCamera(source sensor.Source) *Camera {
	return &Camera{base: newBase(KindCamera, source), mode: "depth"}
}

// SetMode switches the palette. Unknown names render as depth.
func (c *Camera) SetMode(mode string) {
	c.modeMu.Lock()
	defer c.modeMu.Unlock()
	c.mode = mode
}

// Mode returns the current mode name.
func (c *Camera) Mode() string {
	c.modeMu.Lock()
	defer c.modeMu.Unlock()
	return c.mode
}

func (c *Camera) Render(width, height int) string {
	r, ok := c.frame()
	if !ok {
		return paused(c.kind, width, height)
	}
	palette, found := cameraPalettes[c.Mode()]
	if !found {
		palette = shadeRunes
	}
	return block(shadeGrid(r.Values, palette, width, height), width, height)
}
