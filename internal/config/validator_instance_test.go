package config

import (
	"testing"
)

func TestGetValidator(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	// Should return the same instance (singleton)
	if v1 != v2 {
		t.Error("GetValidator should return the same instance (singleton pattern)")
	}
}

func TestBreakpointNameValidation(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"short", "md", true},
		{"leading digit", "2xl", true},
		{"hyphenated", "wide-desktop", true},
		{"empty", "", false},
		{"uppercase", "LG", false},
		{"space", "big screen", false},
		{"leading hyphen", "-sm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, "breakpoint_name")
			if got := err == nil; got != tt.expected {
				t.Errorf("breakpoint_name(%q) = %v, want %v (err: %v)", tt.value, got, tt.expected, err)
			}
		})
	}
}

func TestStorageDriverValidation(t *testing.T) {
	v := GetValidator()

	for _, driver := range []string{"file", "sqlite", "memory", "none", " SQLite "} {
		if err := v.Var(driver, "storage_driver"); err != nil {
			t.Errorf("storage_driver(%q) unexpected error: %v", driver, err)
		}
	}
	for _, driver := range []string{"", "redis", "postgres"} {
		if err := v.Var(driver, "storage_driver"); err == nil {
			t.Errorf("storage_driver(%q) expected error", driver)
		}
	}
}
