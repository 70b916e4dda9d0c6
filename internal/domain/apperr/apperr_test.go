package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindMatching(t *testing.T) {
	err := InvalidState("already finalized")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("expected invalid state kind to match sentinel")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("invalid state must not match forbidden")
	}
	if err.Error() != "already finalized" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestKindMatchingThroughWrap(t *testing.T) {
	err := fmt.Errorf("decide request: %w", Forbidden("not your direct report"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatal("expected wrapped error to match forbidden sentinel")
	}
	if KindOf(err) != KindForbidden {
		t.Fatalf("unexpected kind: %d", KindOf(err))
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("boom")) != 0 {
		t.Fatal("expected zero kind for foreign error")
	}
}
