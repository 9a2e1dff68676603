package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// Keyboard dispatches virtual-key events over the protocol. It satisfies
// platform.Inputter, so the injection engine can drive it interchangeably
// with the native backend. Events reach the page, not the native address
// bar; this is the cross-platform low-confidence path.
type Keyboard struct {
	p    *Page
	ctx  context.Context
	mods input.Modifier
}

// namedVKs carries the DOM key/code names and text payloads for the
// non-printing keys the engine emits.
var namedVKs = map[platform.VK]struct {
	key  string
	code string
	text string
}{
	platform.VKReturn:  {"Enter", "Enter", "\r"},
	platform.VKTab:     {"Tab", "Tab", ""},
	platform.VKEscape:  {"Escape", "Escape", ""},
	platform.VKBack:    {"Backspace", "Backspace", ""},
	platform.VKShift:   {"Shift", "ShiftLeft", ""},
	platform.VKControl: {"Control", "ControlLeft", ""},
	platform.VKMenu:    {"Alt", "AltLeft", ""},
	platform.VKLWin:    {"Meta", "MetaLeft", ""},
}

func (k *Keyboard) KeyDown(vk platform.VK) error {
	if mod, ok := modifierBit(vk); ok {
		k.mods |= mod
		return k.dispatch(input.KeyRawDown, vk)
	}
	typ := input.KeyRawDown
	if text := k.textFor(vk); text != "" && k.mods&^input.ModifierShift == 0 {
		// Only an unmodified or shift-only press produces a character.
		typ = input.KeyDown
	}
	return k.dispatch(typ, vk)
}

func (k *Keyboard) KeyUp(vk platform.VK) error {
	if mod, ok := modifierBit(vk); ok {
		k.mods &^= mod
	}
	return k.dispatch(input.KeyUp, vk)
}

func (k *Keyboard) dispatch(typ input.KeyType, vk platform.VK) error {
	ev := input.DispatchKeyEvent(typ).
		WithWindowsVirtualKeyCode(int64(vk)).
		WithNativeVirtualKeyCode(int64(vk)).
		WithModifiers(k.mods)

	if named, ok := namedVKs[vk]; ok {
		ev = ev.WithKey(named.key).WithCode(named.code)
		if typ == input.KeyDown && named.text != "" {
			ev = ev.WithText(named.text).WithUnmodifiedText(named.text)
		}
	} else if text := k.textFor(vk); text != "" {
		ev = ev.WithKey(text)
		if code := codeFor(vk); code != "" {
			ev = ev.WithCode(code)
		}
		if typ == input.KeyDown {
			unmodified := text
			if r, ok := platform.DecodeKeystroke(platform.Keystroke{VK: vk}); ok {
				unmodified = string(r)
			}
			ev = ev.WithText(text).WithUnmodifiedText(unmodified)
		}
	}

	if err := k.p.run(k.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return ev.Do(ctx)
	})); err != nil {
		return fmt.Errorf("dispatch key %#x: %w", vk, err)
	}
	return nil
}

// textFor resolves the character this key would currently produce given
// the held modifiers.
func (k *Keyboard) textFor(vk platform.VK) string {
	r, ok := platform.DecodeKeystroke(platform.Keystroke{
		VK:    vk,
		Shift: k.mods&input.ModifierShift != 0,
	})
	if !ok {
		return ""
	}
	return string(r)
}

func codeFor(vk platform.VK) string {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return "Key" + string(rune(vk))
	case vk >= '0' && vk <= '9':
		return "Digit" + string(rune(vk))
	case vk == platform.VKSpace:
		return "Space"
	}
	return ""
}

func modifierBit(vk platform.VK) (input.Modifier, bool) {
	switch vk {
	case platform.VKShift:
		return input.ModifierShift, true
	case platform.VKControl:
		return input.ModifierCtrl, true
	case platform.VKMenu:
		return input.ModifierAlt, true
	case platform.VKLWin:
		return input.ModifierMeta, true
	}
	return 0, false
}
