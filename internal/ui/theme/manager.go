package theme

import (
	"sort"
	"sync"
)

// Default is used until SetTheme picks something else.
const Default = "tokyonight"

var registry = struct {
	sync.RWMutex
	themes  map[string]Theme
	current string
}{themes: make(map[string]Theme), current: Default}

// Register adds or replaces a theme under t.Name.
func Register(t Theme) {
	registry.Lock()
	defer registry.Unlock()
	registry.themes[t.Name] = t
}

// SetTheme switches to a registered theme by name and reports whether it
// exists. An unknown name leaves the current theme in place.
func SetTheme(name string) bool {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.themes[name]; !ok {
		return false
	}
	registry.current = name
	return true
}

// Current returns the active theme.
func Current() Theme {
	registry.RLock()
	defer registry.RUnlock()
	if t, ok := registry.themes[registry.current]; ok {
		return t
	}
	return tokyoNight
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	registry.RLock()
	defer registry.RUnlock()
	return registry.current
}

// Available returns every registered theme name in sorted order.
func Available() []string {
	registry.RLock()
	defer registry.RUnlock()
	return sortedNames()
}

// Cycle switches to the next theme in sorted order and returns its name.
func Cycle() string {
	registry.Lock()
	defer registry.Unlock()
	names := sortedNames()
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == registry.current {
			next = (i + 1) % len(names)
			break
		}
	}
	registry.current = names[next]
	return registry.current
}

func sortedNames() []string {
	names := make([]string, 0, len(registry.themes))
	for name := range registry.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
