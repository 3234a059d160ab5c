package werr

import (
	"errors"
	"testing"
)

func TestErrorf(t *testing.T) {
	if err := Errorf("no error here: %d", 42); err != nil {
		t.Errorf("expected nil. got: %s", err)
	}
	base := errors.New("boom")
	err := Errorf("wrapping: %w", base)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to match base")
	}
	if err := Errorf("nil error: %w", error(nil)); err != nil {
		t.Errorf("expected nil. got: %s", err)
	}
}
