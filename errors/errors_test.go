package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResume,
				Kind:   KindReentrancy,
				TaskID: "ab12cd34",
				Detail: "context is already running",
			},
			contains: []string{"[resume]", "reentrancy", "task ab12cd34", "context is already running"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseYield,
				Kind:  KindNotInGenerator,
			},
			contains: []string{"[yield]", "not_in_generator"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAlloc,
				Kind:   KindAllocation,
				Detail: "cannot allocate 4096-byte stack",
				Cause:  errors.New("out of memory"),
			},
			contains: []string{"[alloc]", "allocation", "4096-byte stack", "caused by", "out of memory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseAlloc,
		Kind:  KindAllocation,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	err := Reentrancy("ab12cd34")

	if !errors.Is(err, &Error{Phase: PhaseResume, Kind: KindReentrancy}) {
		t.Error("errors with matching phase and kind should match")
	}
	if errors.Is(err, &Error{Phase: PhaseResume, Kind: KindCrossDomain}) {
		t.Error("errors with different kinds should not match")
	}
	if errors.Is(err, &Error{Phase: PhaseYield, Kind: KindReentrancy}) {
		t.Error("errors with different phases should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseYield, KindTypeMismatch).
		Task("ab12cd34").
		Detail("yielded %s", "string").
		Build()

	if err.Phase != PhaseYield {
		t.Errorf("Phase = %q, want %q", err.Phase, PhaseYield)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %q, want %q", err.Kind, KindTypeMismatch)
	}
	if err.TaskID != "ab12cd34" {
		t.Errorf("TaskID = %q, want %q", err.TaskID, "ab12cd34")
	}
	if err.Detail != "yielded string" {
		t.Errorf("Detail = %q, want %q", err.Detail, "yielded string")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"allocation", Allocation(1024, nil), PhaseAlloc, KindAllocation},
		{"reentrancy", Reentrancy("id"), PhaseResume, KindReentrancy},
		{"not in generator", NotInGenerator(), PhaseYield, KindNotInGenerator},
		{"cross domain", CrossDomain("id", 1, 2), PhaseResume, KindCrossDomain},
		{"type mismatch", TypeMismatch("id", "int"), PhaseYield, KindTypeMismatch},
		{"stack overflow", StackOverflow("id"), PhaseYield, KindStackOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %q, want %q", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
		})
	}
}
