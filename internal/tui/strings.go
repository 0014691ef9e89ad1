package tui

// Message keys. User-facing text lives here and never comes from core error
// strings.
const (
	msgNoSensor     = "NO_SENSOR"
	msgFullScreen   = "MSG_FULL_SCREEN"
	msgEmptyCatalog = "EMPTY_CATALOG"
	msgNoSession    = "NO_SESSION"
	msgNoMatch      = "NO_MATCH"
	msgReloaded     = "CONFIG_RELOADED"
	msgReloadFailed = "CONFIG_RELOAD_FAILED"
	msgJumpPrompt   = "JUMP_PROMPT"
)

var messages = map[string]string{
	msgNoSensor:     "No sensor detected. Connect a sensor to continue.",
	msgFullScreen:   "This shell needs more room. Make the terminal larger to continue.",
	msgEmptyCatalog: "No panels are available for this sensor.",
	msgNoSession:    "No sensor session is open.",
	msgNoMatch:      "No panel matches that name.",
	msgReloaded:     "Configuration reloaded.",
	msgReloadFailed: "Configuration reload failed; keeping previous settings.",
	msgJumpPrompt:   "panel: ",
}

// text returns the display string for key, or key itself when it is unknown.
func text(key string) string {
	if s, ok := messages[key]; ok {
		return s
	}
	return key
}
