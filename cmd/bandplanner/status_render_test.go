package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderNotice(t *testing.T) {
	if got := renderNotice(noticeError, " boom ", false); got != "[ERROR] boom" {
		t.Fatalf("unexpected plain notice %q", got)
	}
	colored := renderNotice(noticeOK, "done", true)
	if !strings.HasPrefix(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected green notice, got %q", colored)
	}
}

func TestRenderGroupHeaderColorsByMissingCount(t *testing.T) {
	lines := renderGroupHeader("All members present", 0, 3, false)
	if lines[0] != "== All members present (3) ==" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length %d does not match header %d", len(lines[1]), len(lines[0]))
	}

	tests := map[int]string{0: ansiGreen, 1: ansiYellow, 4: ansiRed}
	for missing, color := range tests {
		lines := renderGroupHeader("x", missing, 1, true)
		if !strings.HasPrefix(lines[0], color) {
			t.Fatalf("missing=%d: expected color %q in %q", missing, color, lines[0])
		}
	}
}

func TestShouldColorizeIgnoresBuffers(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}
