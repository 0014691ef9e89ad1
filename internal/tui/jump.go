package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// jumpState is the "/" prompt that selects a panel by fuzzy title match.
type jumpState struct {
	input   textinput.Model
	matches []int // catalog indices, best match first
	cursor  int
}

func newJumpState() jumpState {
	ti := textinput.New()
	ti.Prompt = text(msgJumpPrompt)
	ti.Placeholder = "type a panel name"
	ti.CharLimit = 32
	return jumpState{input: ti}
}

// open clears the prompt, lists every panel and focuses the input.
func (j *jumpState) open(titles []string) tea.Cmd {
	j.input.SetValue("")
	j.cursor = 0
	j.refresh(titles)
	return j.input.Focus()
}

func (j *jumpState) close() {
	j.input.Blur()
	j.matches = nil
	j.cursor = 0
}

// update forwards a key to the input and re-ranks the matches.
func (j *jumpState) update(msg tea.Msg, titles []string) tea.Cmd {
	var cmd tea.Cmd
	j.input, cmd = j.input.Update(msg)
	j.refresh(titles)
	return cmd
}

// refresh ranks titles against the query. An empty query lists everything
// in catalog order.
func (j *jumpState) refresh(titles []string) {
	query := strings.TrimSpace(j.input.Value())
	j.matches = j.matches[:0]
	if query == "" {
		for i := range titles {
			j.matches = append(j.matches, i)
		}
	} else {
		for _, m := range fuzzy.Find(query, titles) {
			j.matches = append(j.matches, m.Index)
		}
	}
	if j.cursor >= len(j.matches) {
		j.cursor = 0
	}
}

// move steps the highlighted match with wraparound.
func (j *jumpState) move(delta int) {
	n := len(j.matches)
	if n == 0 {
		return
	}
	j.cursor = ((j.cursor+delta)%n + n) % n
}

// selected returns the catalog index of the highlighted match.
func (j *jumpState) selected() (int, bool) {
	if len(j.matches) == 0 {
		return -1, false
	}
	return j.matches[j.cursor], true
}
