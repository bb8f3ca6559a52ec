package input

import "sort"

// intentRegistry maps canonical intent names to intents
// Used by the key binding loader to resolve config strings
var intentRegistry map[string]Intent

func init() {
	intentRegistry = make(map[string]Intent)
	for i := IntentNone; i <= IntentToggleMute; i++ {
		intentRegistry[i.String()] = i
	}
}

// IntentByName resolves a canonical intent name, "none" unbinds
func IntentByName(name string) (Intent, bool) {
	i, ok := intentRegistry[name]
	return i, ok
}

// IntentNames returns all registered intent names, sorted
func IntentNames() []string {
	names := make([]string, 0, len(intentRegistry))
	for name := range intentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
