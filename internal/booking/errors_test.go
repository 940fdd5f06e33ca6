package booking

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := reject(KindScheduleConflict, "overlap")
	kind, ok := KindOf(err)
	if !ok || kind != KindScheduleConflict {
		t.Fatalf("KindOf = %s, %v", kind, ok)
	}

	// wrapped rejections still expose their kind
	wrapped := fmt.Errorf("admitting: %w", err)
	kind, ok = KindOf(wrapped)
	if !ok || kind != KindScheduleConflict {
		t.Fatalf("KindOf(wrapped) = %s, %v", kind, ok)
	}

	if _, ok := KindOf(errors.New("connection reset")); ok {
		t.Fatal("storage errors must not carry a rejection kind")
	}
	if _, ok := KindOf(nil); ok {
		t.Fatal("nil error must not carry a kind")
	}
}
