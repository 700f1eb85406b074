package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressSpinnerRendersAndClears(t *testing.T) {
	var buf bytes.Buffer
	sp := newCustomProgressSpinner(&buf, 0, 5*time.Millisecond)
	sp.Stage("Uploading guide.md...")
	time.Sleep(30 * time.Millisecond)
	sp.Stop()
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "Uploading guide.md...") {
		t.Fatalf("expected message in output: %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[2K") {
		t.Fatalf("expected spinner line cleared on stop: %q", out)
	}
}

func TestProgressSpinnerHiddenBeforeDelay(t *testing.T) {
	var buf bytes.Buffer
	sp := newCustomProgressSpinner(&buf, time.Hour, time.Millisecond)
	sp.Stage("Indexing...")
	time.Sleep(10 * time.Millisecond)
	sp.Stop()

	if buf.Len() != 0 {
		t.Fatalf("quick operations should not draw anything, got %q", buf.String())
	}
}

func TestProgressSpinnerNil(t *testing.T) {
	var sp *progressSpinner
	sp.Stage("ignored")
	sp.Stop()
}
