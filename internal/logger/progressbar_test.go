package logger

import (
	"strings"
	"testing"
)

func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		current int
		width   int
		want    string
	}{
		{"empty", 4, 0, 10, "[          ] 0/4 (0%)"},
		{"half", 4, 2, 10, "[=====     ] 2/4 (50%)"},
		{"full", 4, 4, 10, "[==========] 4/4 (100%)"},
		{"overflow clamps", 4, 9, 4, "[====] 9/4 (100%)"},
		{"zero total", 0, 0, 5, "[     ] 0/0 (0%)"},
		{"default width", 2, 1, 0, "[=====     ] 1/2 (50%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, tt.width, false)
			pb.Update(tt.current)
			if got := pb.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressBarIncrement(t *testing.T) {
	pb := NewProgressBar(3, 3, false)
	pb.Increment()
	pb.Increment()
	if got := pb.Percentage(); got != 66 {
		t.Errorf("Percentage() = %d, want 66", got)
	}
}

func TestProgressBarColor(t *testing.T) {
	pb := NewProgressBar(2, 2, true)
	pb.Update(1)
	if !strings.Contains(pb.Render(), "\x1b[36m") {
		t.Errorf("in-progress bar should be cyan: %q", pb.Render())
	}
	pb.Update(2)
	if !strings.Contains(pb.Render(), "\x1b[32m") {
		t.Errorf("complete bar should be green: %q", pb.Render())
	}
}
