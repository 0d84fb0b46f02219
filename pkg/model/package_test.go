package model

import (
	"strings"
	"testing"
)

func TestPackageMatches(t *testing.T) {
	pkg := Package{
		Name:    "VLC media player",
		ID:      "org.videolan.VLC",
		Version: "3.0.20",
		Summary: "Multimedia player for various audio and video formats",
		Origin:  OriginFlatpak,
	}

	tests := []struct {
		name     string
		keyword  string
		expected bool
	}{
		{"match on name lowercase", "vlc", true},
		{"match on id", "videolan", true},
		{"match on summary", "multimedia", true},
		{"no match", "firefox", false},
		{"empty keyword matches", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pkg.Matches(strings.ToLower(tt.keyword)); got != tt.expected {
				t.Errorf("Matches(%q) = %v, want %v", tt.keyword, got, tt.expected)
			}
		})
	}
}

func TestPackageLabel(t *testing.T) {
	flatpak := Package{Name: "VLC", ID: "org.videolan.VLC", Origin: OriginFlatpak}
	if got := flatpak.Label(); got != "VLC (org.videolan.VLC)" {
		t.Errorf("flatpak label = %q", got)
	}

	native := Package{Name: "vlc", ID: "vlc", Origin: OriginNative}
	if got := native.Label(); got != "vlc" {
		t.Errorf("native label = %q", got)
	}
}

func TestOriginTag(t *testing.T) {
	// Tags must render at equal width so listings line up.
	if len(OriginNative.Tag()) != len(OriginFlatpak.Tag()) {
		t.Errorf("origin tags differ in width: %q vs %q", OriginNative.Tag(), OriginFlatpak.Tag())
	}
}
