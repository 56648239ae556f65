package repository

import (
	"strings"
	"testing"
)

func TestGenerateVoucherCodeShape(t *testing.T) {
	code, err := GenerateVoucherCode(8)
	if err != nil {
		t.Fatalf("GenerateVoucherCode error = %v", err)
	}
	if len(code) != 16 {
		t.Errorf("len(code) = %d, want 16", len(code))
	}
	if code != strings.ToUpper(code) {
		t.Errorf("code %q is not uppercase", code)
	}
	for _, r := range code {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			t.Errorf("code %q contains non-hex rune %q", code, r)
		}
	}
}

func TestGenerateVoucherCodeVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateVoucherCode(8)
		if err != nil {
			t.Fatalf("GenerateVoucherCode error = %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
