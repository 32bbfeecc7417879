package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 250, false},
		{"tiny", 1e-6, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("spot width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSettings) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidSettings)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 600, false},
		{"negative", -0.5, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("skirt offset", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"low edge", 1, false},
		{"middle", 90, false},
		{"high edge", 179, false},
		{"below", 0.5, true},
		{"above", 180, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("spot angle", tt.input, 1, 179)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	if err := ValidateFinite("boundary point 0", 1, 2, 3); err != nil {
		t.Errorf("ValidateFinite() error = %v", err)
	}
	err := ValidateFinite("boundary point 3", 1, math.Inf(-1), 3)
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateFinite() error = %v, want %v", err, ErrCodeInvalidInput)
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := []string{"svg", "json", "dot"}
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"single", []string{"svg"}, false},
		{"multiple", []string{"svg", "json"}, false},
		{"case insensitive", []string{"SVG"}, false},
		{"padded", []string{" dot "}, false},
		{"empty", nil, true},
		{"unknown", []string{"png"}, true},
		{"one unknown", []string{"svg", "pdf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.input, allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}

	err := ValidateFormats([]string{"png"}, allowed...)
	if !strings.Contains(UserMessage(err), "svg, json, dot") {
		t.Errorf("message %q should list valid formats", UserMessage(err))
	}
}

func TestValidateLotID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b6c1a52-3b0f-4f53-9f0e-7d9f0b1c2d3e", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLotID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLotID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
