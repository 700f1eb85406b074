package ui

import (
	"strings"
	"testing"
)

func TestPlaceOverlay(t *testing.T) {
	bg := "aaaaa\nbbbbb\nccccc"

	t.Run("ReplacesCellsUnderForeground", func(t *testing.T) {
		got := placeOverlay("XY", bg, 1, 1)
		if got != "aaaaa\nbXYbb\nccccc" {
			t.Errorf("unexpected result:\n%s", got)
		}
	})

	t.Run("EmptyForegroundKeepsBackground", func(t *testing.T) {
		if got := placeOverlay("", bg, 1, 1); got != bg {
			t.Errorf("expected background unchanged, got:\n%s", got)
		}
	})

	t.Run("PadsShortBackground", func(t *testing.T) {
		got := placeOverlay("Z", "a", 2, 1)
		if got != "a\n  Z" {
			t.Errorf("unexpected result %q", got)
		}
	})

	t.Run("StyledBackgroundKeepsVisibleWidth", func(t *testing.T) {
		styled := styleMuted().Render("0123456789")
		got := placeOverlay("##", styled, 4, 0)
		if !strings.Contains(got, "##") {
			t.Errorf("expected foreground in result %q", got)
		}
	})
}

func TestCenteredOffsets(t *testing.T) {
	x, y := centeredOffsets(100, 40, 20, 10, 1, 1)
	if x != 40 || y != 15 {
		t.Errorf("expected (40, 15), got (%d, %d)", x, y)
	}

	t.Run("TallContentStaysBelowTopMargin", func(t *testing.T) {
		_, y := centeredOffsets(80, 10, 20, 30, 1, 1)
		if y != 1 {
			t.Errorf("expected y clamped to top margin, got %d", y)
		}
	})

	t.Run("WideContentStartsAtZero", func(t *testing.T) {
		x, _ := centeredOffsets(10, 10, 30, 2, 0, 0)
		if x != 0 {
			t.Errorf("expected x 0, got %d", x)
		}
	})
}

func TestOverlayBottomRight(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	got := overlayBottomRight("T", bg, 20, 10)
	lines := strings.Split(got, "\n")
	if lines[7] != strings.Repeat(".", 18)+"T." {
		t.Errorf("expected toast above the footer row, got %q", lines[7])
	}
}
