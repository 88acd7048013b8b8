package errors

import (
	"fmt"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOperation" {
		t.Errorf("Expected operation 'TestOperation', got '%s'", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if panicErr.Error() != "panic in TestOperation: test panic message" {
		t.Errorf("unexpected message %q", panicErr.Error())
	}
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecover_WithExistingError(t *testing.T) {
	original := fmt.Errorf("original failure")
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = original
		panic("late panic")
	}

	err := testFunc()
	if !Is(err, original) {
		t.Errorf("expected original error to be preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "late panic") {
		t.Errorf("expected panic value in message, got %v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	tests := []struct {
		name      string
		fn        func() error
		wantErr   bool
		wantPanic bool
	}{
		{name: "success", fn: func() error { return nil }},
		{name: "function error", fn: func() error { return ErrEmptyData }, wantErr: true},
		{
			name: "gonum shape panic",
			fn: func() error {
				a := mat.NewDense(2, 3, nil)
				b := mat.NewDense(2, 3, nil)
				var c mat.Dense
				c.Mul(a, b)
				return nil
			},
			wantErr:   true,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute(tt.name, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SafeExecute() error = %v, wantErr %v", err, tt.wantErr)
			}
			var panicErr *PanicError
			if got := As(err, &panicErr); got != tt.wantPanic {
				t.Errorf("As(*PanicError) = %v, want %v", got, tt.wantPanic)
			}
		})
	}
}
