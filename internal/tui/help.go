package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/evolution/internal/navigation"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	"github.com/charmbracelet/glamour"
)

// helpMarkdown builds the help document from the active keymap so overridden
// keys show up as bound.
func helpMarkdown(km *keymap.Keymap) string {
	var b strings.Builder
	b.WriteString("# Evolution\n\n")
	b.WriteString("The camera slot shows the raw sensor feed and the panel slot shows one ")
	b.WriteString("derived visualization. The strip below holds the other panels.\n\n")

	for _, category := range km.GetCategories(keymap.ModeNormal) {
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n| --- | --- |\n", category)
		seen := make(map[keymap.Command]bool)
		for _, binding := range km.GetBindingsByCategory(keymap.ModeNormal)[category] {
			if seen[binding.Command] {
				continue
			}
			seen[binding.Command] = true
			keys := km.KeysFor(binding.Command, keymap.ModeNormal)
			desc := binding.Description
			if binding.Command == keymap.CmdJumpToPanel {
				keys, desc = "1-9", "Select panel by position"
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", keys, desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Mouse\n\n")
	b.WriteString("- Click the camera to step to the next camera mode.\n")
	b.WriteString("- Click the panel slot to step to the next panel.\n")
	b.WriteString("- Click a thumbnail to show it in the panel slot.\n\n")

	b.WriteString("## Camera modes\n\n")
	for _, mode := range navigation.CameraModes() {
		fmt.Fprintf(&b, "- %s\n", mode)
	}
	b.WriteString("\n")
	return b.String()
}

// helpView caches the rendered help for one width.
type helpView struct {
	lines  []string
	width  int
	offset int
}

// render lays the help out for width, reusing the last result when the
// width is unchanged.
func (h *helpView) render(km *keymap.Keymap, width int) {
	if width == h.width && h.lines != nil {
		return
	}
	md := helpMarkdown(km)
	out := md
	wrap := max(width-4, 20)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	); err == nil {
		if rendered, err := r.Render(md); err == nil {
			out = rendered
		}
	}
	h.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	h.width = width
	h.offset = min(h.offset, h.maxOffset(0))
}

func (h *helpView) invalidate() { h.lines = nil }

func (h *helpView) maxOffset(visible int) int {
	return max(len(h.lines)-visible, 0)
}

// scroll moves the window by delta lines, clamped to the document.
func (h *helpView) scroll(delta, visible int) {
	h.offset = min(max(h.offset+delta, 0), h.maxOffset(visible))
}

// window returns the visible slice of lines.
func (h *helpView) window(visible int) []string {
	if visible <= 0 || len(h.lines) == 0 {
		return nil
	}
	end := min(h.offset+visible, len(h.lines))
	return h.lines[h.offset:end]
}
