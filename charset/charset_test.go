package charset

import (
	"errors"
	"testing"
)

func TestByValue(t *testing.T) {
	tests := []struct {
		value int
		name  string
	}{
		{0, "Cp437"},
		{2, "Cp437"},
		{3, "ISO-8859-1"},
		{20, "Shift_JIS"},
		{26, "UTF-8"},
		{170, "US-ASCII"},
	}
	for _, tt := range tests {
		eci, err := ByValue(tt.value)
		if err != nil {
			t.Fatalf("ByValue(%d): %v", tt.value, err)
		}
		if eci.Name != tt.name {
			t.Errorf("ByValue(%d) = %s, want %s", tt.value, eci.Name, tt.name)
		}
	}
	if _, err := ByValue(14); !errors.Is(err, ErrUnknownECI) {
		t.Errorf("ByValue(14) error = %v, want ErrUnknownECI", err)
	}
}

func TestByNameAliases(t *testing.T) {
	for _, name := range []string{"SJIS", "Shift_JIS"} {
		if eci := ByName(name); eci == nil || eci.Value() != 20 {
			t.Errorf("ByName(%q) = %v", name, eci)
		}
	}
	if ByName("klingon") != nil {
		t.Error("ByName(klingon) should be nil")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, "ISO-8859-1", "café"},
		{"sjis", []byte{0x82, 0xA0}, "Shift_JIS", "あ"},
		{"utf8", []byte("héllo"), "UTF-8", "héllo"},
		{"iana name", []byte{0xE9}, "latin1", "é"},
		{"ascii", []byte("plain"), "US-ASCII", "plain"},
		{"unknown", []byte("raw"), "klingon", "raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.data, tt.encoding); got != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuess(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		hint string
		want string
	}{
		{"hint wins", []byte("abc"), "UTF-8", "UTF-8"},
		{"ascii", []byte("hello"), "", ISO8859_1},
		{"utf8", []byte("héllo wörld"), "", UTF8},
		{"latin1", []byte{'c', 'a', 'f', 0xE9, ' ', 'n', 'o', 'i', 'r', 'e', ' ', 'x'}, "", ISO8859_1},
		{"sjis", []byte{0x82, 0xA0, 0x82, 0xA2, 0x82, 0xA4}, "", ShiftJIS},
		{"utf16 bom", []byte{0xFE, 0xFF, 0x00, 'a'}, "", UTF16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guess(tt.data, tt.hint); got != tt.want {
				t.Errorf("Guess = %q, want %q", got, tt.want)
			}
		})
	}
}
