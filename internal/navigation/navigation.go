// Package navigation turns directional input into indices over a bounded,
// possibly changing collection, and cycles the camera modes.
package navigation

import (
	"fmt"

	"github.com/Iron-Ham/evolution/internal/errors"
)

// Direction is the navigation direction.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// step normalizes any non-negative direction to Forward.
func (d Direction) step() int {
	if d < 0 {
		return -1
	}
	return 1
}

// Next returns the index to select after a directional step.
//
// When current differs from lastKnown, the selection was changed by some
// other means and Next returns current so navigation catches up instead of
// advancing. Otherwise the result is lastKnown stepped by dir. Either way the
// result is wrapped into [0, count), so a cleared selection (-1) lands on the
// last element.
func Next(lastKnown, current, count int, dir Direction) (int, error) {
	if count <= 0 {
		return -1, errors.NewCatalogError("navigate", errors.ErrEmptyCatalog).WithCount(count)
	}
	if current != lastKnown && current < count {
		return wrap(current, count), nil
	}
	return wrap(lastKnown+dir.step(), count), nil
}

// Cycle steps index by dir over [0, count) with wraparound. It returns -1 for
// an empty range.
func Cycle(index, count int, dir Direction) int {
	if count <= 0 {
		return -1
	}
	return wrap(index+dir.step(), count)
}

// wrap pulls i back into [0, count): anything past the end restarts at 0 and
// anything below 0 becomes the last index.
func wrap(i, count int) int {
	switch {
	case i >= count:
		return 0
	case i < 0:
		return count - 1
	}
	return i
}

// CameraMode is a camera-slot visualization mode.
type CameraMode int

const (
	ModeDepth CameraMode = iota
	ModeInfrared
	ModeColor
	ModeColorAndInfrared
	ModeColorRegistration
	// ModeDepthRamp is drawn by the depth-with-color tech panel and is never
	// offered in the camera slot.
	ModeDepthRamp
)

var modeNames = map[CameraMode]string{
	ModeDepth:             "depth",
	ModeInfrared:          "infrared",
	ModeColor:             "color",
	ModeColorAndInfrared:  "color+infrared",
	ModeColorRegistration: "color-registration",
	ModeDepthRamp:         "depth-ramp",
}

func (m CameraMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseCameraMode returns the mode named s.
func ParseCameraMode(s string) (CameraMode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeDepth, errors.NewValidationError("unknown camera mode").WithValue(s)
}

// CameraModes returns the cyclable camera modes in order. ModeDepthRamp is
// excluded.
func CameraModes() []CameraMode {
	return []CameraMode{ModeDepth, ModeInfrared, ModeColor, ModeColorAndInfrared, ModeColorRegistration}
}

// CycleMode returns the mode after current in dir. A current outside the
// cyclable set (such as ModeDepthRamp) restarts from the first mode going
// forward or the last going backward.
func CycleMode(current CameraMode, dir Direction) CameraMode {
	modes := CameraModes()
	idx := -1
	for i, m := range modes {
		if m == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if dir.step() < 0 {
			return modes[len(modes)-1]
		}
		return modes[0]
	}
	return modes[Cycle(idx, len(modes), dir)]
}
