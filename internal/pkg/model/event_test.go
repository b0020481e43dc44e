package model

import "testing"

func TestEventFromMovieName(t *testing.T) {
	t.Parallel()

	if got := EventFromMovieName("  Gravity 3D "); got.Title != "Gravity 3D" {
		t.Errorf("Title = %q, want %q", got.Title, "Gravity 3D")
	}
	if got := EventFromMovieName(" \t "); got.HasTitle() {
		t.Errorf("expected no title, got %q", got.Title)
	}
	if got := EventFromMovieName("The Hobbit: The Desolation of Sm"); got.Title != "The Hobbit: The Desolation of Sm" {
		t.Errorf("truncated title must be kept verbatim, got %q", got.Title)
	}
}
