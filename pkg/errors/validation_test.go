package errors

import (
	"strings"
	"testing"
)

func TestValidateSKU(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "SKU-100", false},
		{"digits only", "100", false},
		{"with dots", "A.1.2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 65), true},
		{"space", "SKU 100", true},
		{"tab", "SKU\t100", true},
		{"control char", "SKU\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSKU(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSKU(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateSKU(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"shelf", "A-1", false},
		{"with space", "Loading Dock", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"pipe", "A|1", true},
		{"brace", "{A}", true},
		{"newline", "A\n1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDelta(t *testing.T) {
	for _, d := range []int{1, 15, 1000} {
		if err := ValidateDelta(d); err != nil {
			t.Errorf("ValidateDelta(%d) error = %v", d, err)
		}
	}
	for _, d := range []int{0, -1, -50} {
		if err := ValidateDelta(d); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateDelta(%d) = %v, want INVALID_INPUT", d, err)
		}
	}
}
