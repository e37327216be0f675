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
				Phase:   PhaseConvert,
				Kind:    KindArity,
				Entry:   "transfer",
				Path:    []string{"inputs", "0"},
				AbiType: "Result",
				Detail:  "expected 2 type arguments",
			},
			contains: []string{"[convert]", "arity", "in transfer", "inputs.0", "ABI type Result", " - expected 2"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindInvalidInput,
			},
			contains: []string{"[parse]", "invalid_input"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "custom section abi",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "not_found", ": custom section abi", "caused by", "underlying error"},
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
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should follow the cause chain")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindUnknownType,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindUnknownType}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseGenerate, Kind: KindUnknownType}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindArity}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseConvert, Kind: KindUnknownType}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGenerate, KindFieldMissing).
		Entry("Account").
		Path("fields", "owner").
		AbiType("Vec").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "one", "none").
		Build()

	if err.Phase != PhaseGenerate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGenerate)
	}
	if err.Kind != KindFieldMissing {
		t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
	}
	if err.Entry != "Account" {
		t.Errorf("Entry = %v, want Account", err.Entry)
	}
	if len(err.Path) != 2 || err.Path[0] != "fields" || err.Path[1] != "owner" {
		t.Errorf("Path = %v, want [fields owner]", err.Path)
	}
	if err.AbiType != "Vec" {
		t.Errorf("AbiType = %v, want Vec", err.AbiType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected one, got none" {
		t.Errorf("Detail = %q, want 'expected one, got none'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseParse, "bad top level")
		if err.Kind != KindInvalidInput || err.Phase != PhaseParse {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("FieldMissing", func(t *testing.T) {
		err := FieldMissing(PhaseParse, []string{"entry"}, "name")
		if err.Kind != KindFieldMissing {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldMissing)
		}
		if !strings.Contains(err.Detail, `"name"`) {
			t.Errorf("Detail = %q, should name the field", err.Detail)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		err := UnknownType(PhaseConvert, nil, "Weird")
		if err.Kind != KindUnknownType || err.AbiType != "Weird" {
			t.Errorf("got %v %q", err.Kind, err.AbiType)
		}
	})

	t.Run("Arity", func(t *testing.T) {
		err := Arity(PhaseConvert, nil, "Result", 1, 2)
		if err.Kind != KindArity {
			t.Errorf("Kind = %v, want %v", err.Kind, KindArity)
		}
		if err.Value != 1 {
			t.Errorf("Value = %v, want 1", err.Value)
		}
	})

	t.Run("DepthExceeded", func(t *testing.T) {
		err := DepthExceeded(PhaseConvert, []string{"a"}, 64)
		if err.Kind != KindDepthExceeded || !strings.Contains(err.Detail, "64") {
			t.Errorf("got %v %q", err.Kind, err.Detail)
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		err := Syntax(3, 14, "unexpected token")
		if err.Phase != PhaseVerify || err.Kind != KindSyntax {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if len(err.Path) != 1 || err.Path[0] != "3:14" {
			t.Errorf("Path = %v, want [3:14]", err.Path)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLoad, "flags types")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("eof")
		err := Wrap(PhaseParse, KindInvalidData, cause, "decode")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause")
		}
	})
}

func TestWithEntry(t *testing.T) {
	orig := UnknownType(PhaseConvert, []string{"0"}, "X")
	got := orig.WithEntry("fn_a")
	if got.Entry != "fn_a" {
		t.Errorf("Entry = %q, want fn_a", got.Entry)
	}
	if orig.Entry != "" {
		t.Error("WithEntry must not modify the receiver")
	}
}
