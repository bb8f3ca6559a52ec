package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"dot":       '.',
}

// specialKeys maps lowercased tcell key names ("esc", "ctrl-c", "f1") to keys
var specialKeys map[string]tcell.Key

func init() {
	specialKeys = make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		specialKeys[strings.ToLower(name)] = k
	}
}

// ParseBindings builds a sparse override KeyTable from key → intent name pairs
// Returns error on unknown intent names or invalid key names
func ParseBindings(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  make(map[tcell.Key]Intent),
		Runes: make(map[rune]Intent),
	}

	// Sorted for a stable first error
	names := make([]string, 0, len(bindings))
	for k := range bindings {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, key := range names {
		intent, err := resolveIntent(bindings[key])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		if k, ok := specialKeys[strings.ToLower(key)]; ok && k != tcell.KeyRune {
			kt.Keys[k] = intent
			continue
		}
		r, err := resolveRune(key)
		if err != nil {
			return nil, err
		}
		kt.Runes[r] = intent
	}
	return kt, nil
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid key: %q (expected single character, alias or key name)", s)
}

func resolveIntent(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	i, ok := IntentByName(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown intent: %q", name)
	}
	return i, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries with IntentNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.Keys, override.Keys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]Intent) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
