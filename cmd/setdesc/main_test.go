package main

import (
	"errors"
	"testing"
)

func TestGetExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"host failures", &ExecutionError{Message: "2 of 5 switches failed"}, 1},
		{"setup error", &SetupError{Message: "missing credentials"}, 2},
		{"unknown error", errors.New("boom"), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := getExitCode(tc.err); got != tc.want {
				t.Fatalf("getExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
