package services

import (
	"errors"
	"testing"

	"versecut/internal/queue"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrExternalTool, "render", "burn", "ffmpeg exited", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: render: burn: ffmpeg exited: boom"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default: %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want queue.Status
	}{
		{Wrap(ErrValidation, "render", "plan", "bad overlay", nil), queue.StatusReview},
		{Wrap(ErrNotFound, "render", "probe", "missing input", nil), queue.StatusReview},
		{Wrap(ErrExternalTool, "render", "burn", "ffmpeg failed", nil), queue.StatusFailed},
		{errors.New("unclassified"), queue.StatusFailed},
	}
	for _, tc := range cases {
		if got := FailureStatus(tc.err); got != tc.want {
			t.Fatalf("FailureStatus(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
