package theme

import (
	"fmt"
	"sync"
)

// Theme is the visual theme rendered by the shell and the embedded surface.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) String() string {
	return string(t)
}

// ParseTheme parses a theme string. Valid themes are: dark, light.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme: %s", s)
	}
}

// Controller owns the current theme. It is the only writer; everything else
// reads through Current.
type Controller struct {
	mu      sync.Mutex
	current Theme
}

func NewController(initial Theme) *Controller {
	return &Controller{
		current: initial,
	}
}

// Toggle flips between dark and light and returns the new theme. The
// operation is total over the two-element set and cannot fail.
func (c *Controller) Toggle() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == ThemeDark {
		c.current = ThemeLight
	} else {
		c.current = ThemeDark
	}
	return c.current
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
