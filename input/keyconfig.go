package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"colon":     ':',
	"hash":      '#',
}

// keyByName resolves tcell key names case-insensitively ("up", "enter", "ctrl-s", "f12")
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEscape
	return m
}()

// LoadKeyConfig parses keymap sections into a sparse override KeyTable
// Section names are "global" and the input mode names; each maps a key or rune to an action name
// Returns error on unknown sections, action names or key names
func LoadKeyConfig(sections map[string]map[string]string) (*KeyTable, error) {
	kt := &KeyTable{}

	for section, bindings := range sections {
		section = strings.ToLower(section)
		if section == "global" {
			keys := make(map[tcell.Key]KeyEntry, len(bindings))
			for keyStr, action := range bindings {
				k, ok := keyByName[strings.ToLower(keyStr)]
				if !ok {
					return nil, fmt.Errorf("[global] unknown key name: %q", keyStr)
				}
				entry, err := resolveAction(action)
				if err != nil {
					return nil, fmt.Errorf("[global] key %q: %w", keyStr, err)
				}
				keys[k] = entry
			}
			kt.Global = keys
			continue
		}

		mode, ok := modeByName(section)
		if !ok {
			return nil, fmt.Errorf("unknown keymap section %q", section)
		}
		b := Bindings{Keys: map[tcell.Key]KeyEntry{}, Runes: map[rune]KeyEntry{}}
		for keyStr, action := range bindings {
			entry, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
			}
			if r, err := resolveRune(keyStr); err == nil {
				b.Runes[r] = entry
				continue
			}
			k, ok := keyByName[strings.ToLower(keyStr)]
			if !ok {
				return nil, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
			}
			b.Keys[k] = entry
		}
		kt.Modes[mode] = b
	}

	return kt, nil
}

func modeByName(name string) (InputMode, bool) {
	for m := InputMode(0); m < modeCount; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// resolveRune converts a key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries with IntentNone ("none" action) delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()

	mergeMap(result.Global, override.Global)
	for i := range result.Modes {
		mergeMap(result.Modes[i].Keys, override.Modes[i].Keys)
		mergeMap(result.Modes[i].Runes, override.Modes[i].Runes)
	}

	return result
}

func mergeMap[K comparable](base, override map[K]KeyEntry) {
	if override == nil {
		return
	}
	for k, v := range override {
		if v.Intent == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
