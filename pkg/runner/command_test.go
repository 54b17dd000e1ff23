package runner

import (
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Command
		wantErr bool
	}{
		{"Empty", "", Command{Kind: CommandNoop}, false},
		{"Whitespace", "   ", Command{Kind: CommandNoop}, false},
		{"Bare Words Filter", "garden kick", Command{Kind: CommandQuery, Query: "garden kick"}, false},
		{"Forced Filter", "/ls", Command{Kind: CommandQuery, Query: "ls"}, false},
		{"Clear Filter", "/", Command{Kind: CommandClear}, false},
		{"Down", "j", Command{Kind: CommandMove, Delta: 1}, false},
		{"Down With Count", "down 3", Command{Kind: CommandMove, Delta: 3}, false},
		{"Up", "k", Command{Kind: CommandMove, Delta: -1}, false},
		{"Up With Count", "up 2", Command{Kind: CommandMove, Delta: -2}, false},
		{"Bad Count", "j x", Command{}, true},
		{"Zero Count", "j 0", Command{}, true},
		{"Top", "g", Command{Kind: CommandTop}, false},
		{"Bottom", "G", Command{Kind: CommandBottom}, false},
		{"Goto", "goto lime", Command{Kind: CommandGoto, TargetID: "lime"}, false},
		{"Goto Missing Arg", "goto", Command{}, true},
		{"Children", "ls", Command{Kind: CommandChildren}, false},
		{"Open Focused", "open", Command{Kind: CommandOpen}, false},
		{"Open With ID", "open citrus", Command{Kind: CommandOpen, TargetID: "citrus"}, false},
		{"Close", "close", Command{Kind: CommandClose}, false},
		{"Fling", "fling -3.5", Command{Kind: CommandFling, Velocity: -3.5}, false},
		{"Fling Short", "f 4", Command{Kind: CommandFling, Velocity: 4}, false},
		{"Fling Missing Arg", "fling", Command{}, true},
		{"Fling Bad Velocity", "f fast", Command{}, true},
		{"Quit", "quit", Command{Kind: CommandQuit}, false},
		{"Quit Short", "q", Command{Kind: CommandQuit}, false},
		{"Help", "?", Command{Kind: CommandHelp}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCommand(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
