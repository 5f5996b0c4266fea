package music

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Quadrants(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want []string
	}{
		{"high intensity high complexity", 0.9, 0.9, []string{"intense", "complex", "syncopated"}},
		{"low intensity low complexity", 0.1, 0.1, []string{"soft", "ambient", "simple", "minimal"}},
		{"mid intensity", 0.4, 0.6, []string{"medium energy", "driving", "balanced rhythm"}},
		{"center", 0.4, 0.4, []string{"moderate", "balanced"}},
		{"upper mid complexity", 0.6, 0.4, []string{"moderately complex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt("deep house", tt.x, tt.y)
			if !strings.HasPrefix(got, "deep house") {
				t.Errorf("prompt %q does not start with the base prompt", got)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("prompt %q missing %q", got, want)
				}
			}
		})
	}
}

func TestBuildPrompt_OppositeCornersDiffer(t *testing.T) {
	quiet := BuildPrompt("techno", 0.0, 0.0)
	loud := BuildPrompt("techno", 1.0, 1.0)
	if quiet == loud {
		t.Error("expected opposite corners to produce different prompts")
	}
	if strings.Contains(quiet, "intense") {
		t.Errorf("quiet corner prompt %q contains intense vocabulary", quiet)
	}
}
