package services_test

import (
	"errors"
	"strings"
	"testing"

	"montage/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrEncode, "encoding", "mux", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encoding", "mux", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "rendering", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected nil marker to fall back to transient, got %v", err)
	}
}

func TestUserErrorClassification(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "preparing", "parse", "invalid timeline", nil)
	if !services.UserError(validationErr) {
		t.Fatalf("expected validation error to classify as user error: %v", validationErr)
	}

	toolErr := services.Wrap(services.ErrExternalTool, "encoding", "mux", "ffmpeg exited", errors.New("status 1"))
	if services.UserError(toolErr) {
		t.Fatalf("expected tool error not to classify as user error: %v", toolErr)
	}

	if services.UserError(nil) {
		t.Fatal("nil error must not classify as user error")
	}
}
