package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndExits(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	origWriter, origExit := exitWriter, exitFunc
	exitWriter = &buf
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitWriter, exitFunc = origWriter, origExit })

	Exitf("parse config: %s", "RIOT_API_KEY is required")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got, want := buf.String(), "parse config: RIOT_API_KEY is required\n"; got != want {
		t.Fatalf("stderr = %q, want %q", got, want)
	}
}
