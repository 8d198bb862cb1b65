package cli

import (
	"testing"
)

func TestSetVersion(t *testing.T) {
	t.Cleanup(func() { SetVersion("", "", "") })

	SetVersion("v0.3.0", "deadbeef", "2026-05-01T09:00:00Z")

	if version != "v0.3.0" {
		t.Errorf("version = %q, want %q", version, "v0.3.0")
	}
	if commit != "deadbeef" {
		t.Errorf("commit = %q, want %q", commit, "deadbeef")
	}
	if date != "2026-05-01T09:00:00Z" {
		t.Errorf("date = %q, want %q", date, "2026-05-01T09:00:00Z")
	}
}
