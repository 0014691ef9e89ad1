package catalog

import "github.com/Iron-Ham/evolution/internal/surface"

// String table keys for tech panels.
const (
	TechAudio              = "TECH_AUDIO"
	TechAudioDesc          = "TECH_AUDIO_DESC"
	TechBody               = "TECH_BODY"
	TechBodyDesc           = "TECH_BODY_DESC"
	TechRotation           = "TECH_ROTATION"
	TechRotationDesc       = "TECH_ROTATION_DESC"
	TechDepthWithColor     = "TECH_DEPTH_WITH_COLOR"
	TechDepthWithColorDesc = "TECH_DEPTH_WITH_COLOR_DESC"
)

var texts = map[string]string{
	TechAudio:              "Audio",
	TechAudioDesc:          "Beam direction and input level from the microphone array.",
	TechBody:               "Body",
	TechBodyDesc:           "Tracked skeletons drawn as joints and bones.",
	TechRotation:           "Rotation",
	TechRotationDesc:       "Body orientation as yaw and pitch of the tracked torso.",
	TechDepthWithColor:     "Depth with Color",
	TechDepthWithColorDesc: "Depth frames shaded on a color ramp by distance.",
}

// Lookup returns the text for key, or key itself when it is missing.
func Lookup(key string) string {
	if s, ok := texts[key]; ok {
		return s
	}
	return key
}

type entry struct {
	kind     surface.Kind
	titleKey string
	descKey  string
}

// entries lists the tech panels in catalog order.
var entries = []entry{
	{surface.KindAudio, TechAudio, TechAudioDesc},
	{surface.KindBody, TechBody, TechBodyDesc},
	{surface.KindRotation, TechRotation, TechRotationDesc},
	{surface.KindDepthWithColor, TechDepthWithColor, TechDepthWithColorDesc},
}
