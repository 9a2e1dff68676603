package platform

import "testing"

func TestResolveRune_Letters(t *testing.T) {
	ks, ok := ResolveRune('h')
	if !ok || ks.VK != VK('H') || ks.Shift {
		t.Errorf("ResolveRune('h') = %+v %v, want {0x48 false} true", ks, ok)
	}

	ks, ok = ResolveRune('H')
	if !ok || ks.VK != VK('H') || !ks.Shift {
		t.Errorf("ResolveRune('H') = %+v %v, want {0x48 true} true", ks, ok)
	}
}

func TestResolveRune_Digits(t *testing.T) {
	for r := '0'; r <= '9'; r++ {
		ks, ok := ResolveRune(r)
		if !ok || ks.VK != VK(r) || ks.Shift {
			t.Errorf("ResolveRune(%q) = %+v %v", r, ks, ok)
		}
	}
}

func TestResolveRune_ShiftedSymbols(t *testing.T) {
	tests := []struct {
		r    rune
		want VK
	}{
		{':', vkOEM1},
		{'?', vkOEM2},
		{'&', VK('7')},
		{'!', VK('1')},
		{'@', VK('2')},
		{'_', vkOEMMinus},
		{'+', vkOEMPlus},
		{'"', vkOEM7},
		{'~', vkOEM3},
		{'{', vkOEM4},
		{'|', vkOEM5},
		{'}', vkOEM6},
	}
	for _, tt := range tests {
		ks, ok := ResolveRune(tt.r)
		if !ok {
			t.Errorf("ResolveRune(%q) not resolved", tt.r)
			continue
		}
		if ks.VK != tt.want || !ks.Shift {
			t.Errorf("ResolveRune(%q) = %+v, want {%#x true}", tt.r, ks, tt.want)
		}
	}
}

func TestResolveRune_UnshiftedSymbols(t *testing.T) {
	for _, r := range []rune{'/', '.', '=', '-', ',', ';', '\'', '`', '[', ']', '\\', ' '} {
		ks, ok := ResolveRune(r)
		if !ok {
			t.Errorf("ResolveRune(%q) not resolved", r)
			continue
		}
		if ks.Shift {
			t.Errorf("ResolveRune(%q) should not require shift", r)
		}
	}
}

func TestResolveRune_Unmappable(t *testing.T) {
	for _, r := range []rune{'é', 'ü', '€', '→', '\n', '\t', 0} {
		if _, ok := ResolveRune(r); ok {
			t.Errorf("ResolveRune(%q) should not resolve", r)
		}
	}
}

// Every printable ASCII character survives a resolve/decode roundtrip.
func TestKeymap_RoundtripPrintableASCII(t *testing.T) {
	for r := rune(0x20); r <= 0x7E; r++ {
		ks, ok := ResolveRune(r)
		if !ok {
			t.Errorf("ResolveRune(%q) not resolved", r)
			continue
		}
		got, ok := DecodeKeystroke(ks)
		if !ok {
			t.Errorf("DecodeKeystroke(%+v) for %q not decoded", ks, r)
			continue
		}
		if got != r {
			t.Errorf("roundtrip %q -> %+v -> %q", r, ks, got)
		}
	}
}

func TestDecodeKeystroke_Unknown(t *testing.T) {
	if _, ok := DecodeKeystroke(Keystroke{VK: VKReturn}); ok {
		t.Error("DecodeKeystroke(enter) should not produce a character")
	}
	if _, ok := DecodeKeystroke(Keystroke{VK: 0xFF}); ok {
		t.Error("DecodeKeystroke(0xFF) should not produce a character")
	}
}
