package models

import "testing"

func TestParseAPIVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   APIVersion
		wantOK bool
	}{
		{"", APIVersion1, true},
		{"1", APIVersion1, true},
		{"1.0", APIVersion1, true},
		{"v2.0", APIVersion2, true},
		{" 2 ", APIVersion2, true},
		{"3.0", "", false},
		{"1.5", "", false},
		{"latest", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAPIVersion(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseAPIVersion(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAPIVersionMajorAndHeader(t *testing.T) {
	if got := APIVersion2.Major(); got != "2" {
		t.Errorf("Major() = %q, want 2", got)
	}
	if got := SupportedAPIVersionsHeader(); got != "1.0, 2.0" {
		t.Errorf("SupportedAPIVersionsHeader() = %q", got)
	}
}
