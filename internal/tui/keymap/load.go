package keymap

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// KeymapConfig is the serializable form of a keymap override file.
//
//	name: mine
//	modes:
//	  normal:
//	    - key: x
//	      command: camera_next
type KeymapConfig struct {
	Name        string                      `json:"name" yaml:"name"`
	Description string                      `json:"description" yaml:"description"`
	Extends     string                      `json:"extends,omitempty" yaml:"extends,omitempty"`
	Modes       map[string][]KeyBindingSpec `json:"modes" yaml:"modes"`
}

// KeyBindingSpec is a serializable key binding specification.
type KeyBindingSpec struct {
	Key         string `json:"key" yaml:"key"`         // e.g., "ctrl+r", "j", "enter"
	Command     string `json:"command" yaml:"command"` // Command name
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
}

// LoadFile reads a YAML override file and applies it on top of the default
// keymap.
func LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML override document and applies it on top of the
// default keymap. Unknown fields, modes and commands are errors.
func Parse(data []byte) (*Keymap, error) {
	var cfg KeymapConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	if cfg.Extends != "" && cfg.Extends != "default" {
		return nil, fmt.Errorf("keymap %q extends unknown keymap %q", cfg.Name, cfg.Extends)
	}
	km := DefaultKeymap()
	if err := km.Apply(cfg); err != nil {
		return nil, err
	}
	return km, nil
}

// Apply replaces, per mode and command, the bindings of km with the ones in
// cfg. Commands cfg does not mention keep their existing bindings.
func (km *Keymap) Apply(cfg KeymapConfig) error {
	if cfg.Name != "" {
		km.Name = cfg.Name
	}
	if cfg.Description != "" {
		km.Description = cfg.Description
	}

	for modeName, specs := range cfg.Modes {
		mode := Mode(modeName)
		if !slices.Contains(Modes(), mode) {
			return fmt.Errorf("unknown keymap mode: %s", modeName)
		}
		mb := km.Modes[mode]
		if mb == nil {
			mb = &ModeBindings{Mode: mode}
			km.Modes[mode] = mb
		}

		overrides, err := parseSpecs(mode, specs, mb)
		if err != nil {
			return err
		}

		kept := mb.Bindings[:0:0]
		for _, b := range mb.Bindings {
			if _, replaced := overrides[b.Command]; !replaced {
				kept = append(kept, b)
			}
		}
		// Overrides go first so they win over any default using the same key.
		var added []KeyBinding
		for _, spec := range specs {
			cmd := Command(spec.Command)
			added = append(added, overrides[cmd]...)
			overrides[cmd] = nil
		}
		mb.Bindings = append(added, kept...)
	}
	return nil
}

func parseSpecs(mode Mode, specs []KeyBindingSpec, existing *ModeBindings) (map[Command][]KeyBinding, error) {
	overrides := make(map[Command][]KeyBinding)
	for _, spec := range specs {
		cmd := Command(spec.Command)
		if !slices.Contains(Commands(mode), cmd) {
			return nil, fmt.Errorf("unknown command %q in %s mode", spec.Command, mode)
		}
		keyType, r, mods, err := ParseKeySpec(spec.Key)
		if err != nil {
			return nil, err
		}
		binding := KeyBinding{
			KeyType:     keyType,
			Rune:        r,
			Modifiers:   mods,
			Command:     cmd,
			Description: spec.Description,
			Category:    spec.Category,
		}
		// Inherit help text from the binding being replaced.
		if prev := firstFor(existing, cmd); prev != nil {
			if binding.Description == "" {
				binding.Description = prev.Description
			}
			if binding.Category == "" {
				binding.Category = prev.Category
			}
		}
		overrides[cmd] = append(overrides[cmd], binding)
	}
	return overrides, nil
}

func firstFor(mb *ModeBindings, cmd Command) *KeyBinding {
	for i := range mb.Bindings {
		if mb.Bindings[i].Command == cmd {
			return &mb.Bindings[i]
		}
	}
	return nil
}
