package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	plain := InvalidInput("budget must be positive", nil)
	if plain.Error() != "INVALID_INPUT: budget must be positive" {
		t.Errorf("Unexpected message %q", plain.Error())
	}

	cause := stderrors.New("open data/plans.csv: no such file")
	wrapped := TrainingDataUnavailable("cannot open plans.csv", cause)
	if wrapped.Error() != "TRAINING_DATA_UNAVAILABLE: cannot open plans.csv (caused by: open data/plans.csv: no such file)" {
		t.Errorf("Unexpected message %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("bad date")
	err := EncodingMiss("start_date is not an ISO date", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to see the cause through Unwrap")
	}
}

func TestHasCode(t *testing.T) {
	err := InvalidInput("nope", nil)

	if !HasCode(err, ErrCodeInvalidInput) {
		t.Error("Expected HasCode to match the error's own code")
	}
	if HasCode(err, ErrCodeInternalError) {
		t.Error("Expected HasCode to reject a different code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeInvalidInput) {
		t.Error("Expected HasCode to reject a non-AppError")
	}

	// The code survives fmt wrapping.
	wrapped := fmt.Errorf("handler: %w", err)
	if !HasCode(wrapped, ErrCodeInvalidInput) {
		t.Error("Expected HasCode to unwrap fmt-wrapped errors")
	}
}

func TestWithDetails(t *testing.T) {
	err := InternalError("model emitted no vote", nil).WithDetails("vector length 7")
	if err.Details != "vector length 7" {
		t.Errorf("Expected details set, got %q", err.Details)
	}
}
