package preview

import (
	"fmt"
	"sync"
)

// Valid theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeStore holds the UI theme preference. It is a deliberate, explicit
// state holder: one concern, one owner, instead of an ambient global.
type ThemeStore struct {
	mu    sync.Mutex
	theme string
}

// NewThemeStore creates a store with the light theme selected.
func NewThemeStore() *ThemeStore {
	return &ThemeStore{theme: ThemeLight}
}

// Theme returns the selected theme.
func (t *ThemeStore) Theme() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.theme
}

// Set selects a theme. Only "light" and "dark" are accepted.
func (t *ThemeStore) Set(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.theme = theme
	return nil
}
