package platform

import (
	"fmt"
	"strings"
)

// ListOptions controls window enumeration filtering.
type ListOptions struct {
	Title string // Filter by title substring (case-insensitive)
	PID   int    // Filter by process ID (0 = unset)
}

// namedKeys resolves key names accepted in chord flags.
var namedKeys = map[string]VK{
	"enter":     VKReturn,
	"return":    VKReturn,
	"tab":       VKTab,
	"esc":       VKEscape,
	"escape":    VKEscape,
	"space":     VKSpace,
	"backspace": VKBack,
	"ctrl":      VKControl,
	"control":   VKControl,
	"shift":     VKShift,
	"alt":       VKMenu,
	"option":    VKMenu,
	"win":       VKLWin,
	"meta":      VKLWin,
	"super":     VKLWin,
}

// ParseKey resolves a key name or single printable character to a keystroke.
func ParseKey(s string) (Keystroke, error) {
	if vk, ok := namedKeys[strings.ToLower(s)]; ok {
		return Keystroke{VK: vk}, nil
	}
	if runes := []rune(s); len(runes) == 1 {
		if ks, ok := ResolveRune(runes[0]); ok {
			return ks, nil
		}
	}
	return Keystroke{}, fmt.Errorf("unknown key: %q", s)
}

// ParseChord parses a combo like "ctrl+l" into the keystrokes held together,
// in press order.
func ParseChord(s string) ([]Keystroke, error) {
	parts := strings.Split(s, "+")
	out := make([]Keystroke, 0, len(parts))
	for _, p := range parts {
		ks, err := ParseKey(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, ks)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty key combo")
	}
	return out, nil
}
