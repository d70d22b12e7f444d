package main

import "testing"

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		command string
		restLen int
	}{
		{"no args", nil, "", 0},
		{"subcommand", []string{"login", "-config", "x"}, "login", 2},
		{"flags only", []string{"-config", "x"}, "", 2},
		{"empty first arg", []string{""}, "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			command, rest := splitCommand(tc.args)
			if command != tc.command {
				t.Fatalf("command = %q, want %q", command, tc.command)
			}
			if len(rest) != tc.restLen {
				t.Fatalf("rest = %v, want %d args", rest, tc.restLen)
			}
		})
	}
}
