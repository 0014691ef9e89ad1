package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LogEntry is one parsed line of debug.log.
type LogEntry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	SessionID string         `json:"session_id,omitempty"`
	Component string         `json:"component,omitempty"`
	Panel     string         `json:"panel,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// LogFilter selects entries; zero fields do not filter.
type LogFilter struct {
	// Level keeps entries at or above this level.
	Level           string
	Since           time.Time
	SessionID       string
	Component       string
	MessageContains string
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ReadLogs parses {dir}/debug.log and its rotated backups, returning entries
// sorted by time. Lines that are not valid JSON are skipped.
func ReadLogs(dir string) ([]LogEntry, error) {
	base := filepath.Join(dir, LogFileName)
	paths, _ := filepath.Glob(base + ".*")
	paths = append(paths, base)

	var entries []LogEntry
	found := false
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		found = true
		parsed, err := parseLogStream(file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		entries = append(entries, parsed...)
	}
	if !found {
		return nil, fmt.Errorf("no log file found in %s", dir)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func parseLogStream(r io.Reader) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := parseLogEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

func parseLogEntry(line string) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	entry := LogEntry{Attrs: make(map[string]any)}
	for key, value := range raw {
		s, _ := value.(string)
		switch key {
		case "time":
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				entry.Timestamp = ts
			}
		case "level":
			entry.Level = strings.ToUpper(s)
		case "msg":
			entry.Message = s
		case "session_id":
			entry.SessionID = s
		case "component":
			entry.Component = s
		case "panel":
			entry.Panel = s
		default:
			entry.Attrs[key] = value
		}
	}
	if len(entry.Attrs) == 0 {
		entry.Attrs = nil
	}
	return entry, nil
}

// FilterLogs returns the entries matching every set criterion.
func FilterLogs(entries []LogEntry, filter LogFilter) []LogEntry {
	var out []LogEntry
	for _, entry := range entries {
		if matchesFilter(entry, filter) {
			out = append(out, entry)
		}
	}
	return out
}

func matchesFilter(entry LogEntry, filter LogFilter) bool {
	if filter.Level != "" {
		want, wantOK := levelOrder[strings.ToUpper(filter.Level)]
		got, gotOK := levelOrder[entry.Level]
		if wantOK && gotOK && got < want {
			return false
		}
	}
	if !filter.Since.IsZero() && entry.Timestamp.Before(filter.Since) {
		return false
	}
	if filter.SessionID != "" && entry.SessionID != filter.SessionID {
		return false
	}
	if filter.Component != "" && entry.Component != filter.Component {
		return false
	}
	if filter.MessageContains != "" && !strings.Contains(entry.Message, filter.MessageContains) {
		return false
	}
	return true
}

// WriteText writes entries as "[time] LEVEL component - msg {attrs}" lines.
func WriteText(w io.Writer, entries []LogEntry) error {
	for _, entry := range entries {
		parts := []string{
			fmt.Sprintf("[%s]", entry.Timestamp.Format("15:04:05.000")),
			fmt.Sprintf("%-5s", entry.Level),
		}
		if entry.Component != "" {
			parts = append(parts, entry.Component)
		}
		parts = append(parts, "-", entry.Message)
		if entry.Panel != "" {
			parts = append(parts, fmt.Sprintf("(panel=%s)", entry.Panel))
		}
		if len(entry.Attrs) > 0 {
			attrs, _ := json.Marshal(entry.Attrs)
			parts = append(parts, string(attrs))
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []LogEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
