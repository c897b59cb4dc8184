package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-accountform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.SessionField("4f1c"),
		render.Hidden(" attempt ", 2),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":   "keep",
		"session_id": "4f1c",
		"attempt":    "2",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "attempt", Value: "2"},
		{Name: "existing", Value: "keep"},
		{Name: "session_id", Value: "4f1c"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFields_LaterWins(t *testing.T) {
	merged := render.MergeHiddenFields(map[string]string{"session_id": "old"}, render.SessionField("new"))
	if merged["session_id"] != "new" {
		t.Fatalf("expected later field to win, got %q", merged["session_id"])
	}
	if render.MergeHiddenFields(nil) != nil {
		t.Fatalf("expected nil for no input")
	}
}
