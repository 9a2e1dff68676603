package platform

// VK is a Windows-style virtual-key code. Both keystroke backends consume
// the same codes: the native backend feeds them to the OS input queue and
// the protocol backend passes them as windowsVirtualKeyCode, so the mapping
// stays portable.
type VK uint16

// Named virtual keys used for chords and commits.
const (
	VKBack    VK = 0x08
	VKTab     VK = 0x09
	VKReturn  VK = 0x0D
	VKShift   VK = 0x10
	VKControl VK = 0x11
	VKMenu    VK = 0x12 // Alt
	VKEscape  VK = 0x1B
	VKSpace   VK = 0x20
	VKLWin    VK = 0x5B
)

// OEM keys for US-layout punctuation. The comment names the unshifted and
// shifted character on each key.
const (
	vkOEM1      VK = 0xBA // ; :
	vkOEMPlus   VK = 0xBB // = +
	vkOEMComma  VK = 0xBC // , <
	vkOEMMinus  VK = 0xBD // - _
	vkOEMPeriod VK = 0xBE // . >
	vkOEM2      VK = 0xBF // / ?
	vkOEM3      VK = 0xC0 // ` ~
	vkOEM4      VK = 0xDB // [ {
	vkOEM5      VK = 0xDC // \ |
	vkOEM6      VK = 0xDD // ] }
	vkOEM7      VK = 0xDE // ' "
)

// Keystroke is a virtual key plus whether it needs a shift wrap.
type Keystroke struct {
	VK    VK
	Shift bool
}

// shiftedSymbols maps each US-layout character that requires shift to the
// unshifted character on the same physical key.
var shiftedSymbols = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	':': ';', '+': '=', '<': ',', '_': '-', '>': '.',
	'?': '/', '~': '`', '{': '[', '|': '\\', '}': ']',
	'"': '\'',
}

// baseKeys maps unshifted punctuation to its OEM virtual key.
var baseKeys = map[rune]VK{
	' ':  VKSpace,
	';':  vkOEM1,
	'=':  vkOEMPlus,
	',':  vkOEMComma,
	'-':  vkOEMMinus,
	'.':  vkOEMPeriod,
	'/':  vkOEM2,
	'`':  vkOEM3,
	'[':  vkOEM4,
	'\\': vkOEM5,
	']':  vkOEM6,
	'\'': vkOEM7,
}

// ResolveRune maps a printable ASCII rune to its US-layout keystroke.
// ok is false for anything the key map cannot produce; callers decide
// whether to skip or fail.
func ResolveRune(r rune) (Keystroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Keystroke{VK: VK(r - 'a' + 'A')}, true
	case r >= 'A' && r <= 'Z':
		return Keystroke{VK: VK(r), Shift: true}, true
	case r >= '0' && r <= '9':
		return Keystroke{VK: VK(r)}, true
	}
	if base, ok := shiftedSymbols[r]; ok {
		ks, ok := resolveBase(base)
		if !ok {
			return Keystroke{}, false
		}
		ks.Shift = true
		return ks, true
	}
	return resolveBase(r)
}

func resolveBase(r rune) (Keystroke, bool) {
	if r >= '0' && r <= '9' {
		return Keystroke{VK: VK(r)}, true
	}
	if vk, ok := baseKeys[r]; ok {
		return Keystroke{VK: vk}, true
	}
	return Keystroke{}, false
}

// DecodeKeystroke is the inverse of ResolveRune: the character a US-layout
// keyboard produces for the given keystroke. Used for diagnostics and for
// the protocol backend's text field.
func DecodeKeystroke(ks Keystroke) (rune, bool) {
	switch {
	case ks.VK >= 'A' && ks.VK <= 'Z':
		if ks.Shift {
			return rune(ks.VK), true
		}
		return rune(ks.VK - 'A' + 'a'), true
	case ks.VK >= '0' && ks.VK <= '9':
		if ks.Shift {
			return shiftOf(rune(ks.VK))
		}
		return rune(ks.VK), true
	case ks.VK == VKSpace:
		return ' ', true
	}
	for r, vk := range baseKeys {
		if vk != ks.VK || r == ' ' {
			continue
		}
		if ks.Shift {
			return shiftOf(r)
		}
		return r, true
	}
	return 0, false
}

func shiftOf(base rune) (rune, bool) {
	for shifted, b := range shiftedSymbols {
		if b == base {
			return shifted, true
		}
	}
	return 0, false
}
