package tc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func NoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("expected no error. got: %s", err)
	}
}

// Fails unless err is non-nil. When target is non-nil it
// must be a pointer to an error type and err must match it
// per errors.As.
func WantErr(t *testing.T, err error, target any) {
	t.Helper()
	if err == nil {
		t.Errorf("expected an error. got: nil")
		return
	}
	if target != nil && !errors.As(err, target) {
		t.Errorf("expected %T. got: %s", target, err)
	}
}

func WantGot(tb testing.TB, want, got any) {
	tb.Helper()
	if !reflect.DeepEqual(want, got) {
		tb.Error(pretty.Sprintf("want: %v got: %v", want, got))
	}
}
