package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestTaxonomyDiscrimination(t *testing.T) {
	storeCause := errors.New("connection reset")
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		msg   string
	}{
		{"validation", Validation("title is required"), IsValidation, "title is required"},
		{"not found with ref", NotFound("task", "abc"), IsNotFound, "task not found: abc"},
		{"not found without ref", NotFound("task", ""), IsNotFound, "task not found"},
		{"authentication", Unauthenticated(), IsAuthentication, "authentication required"},
		{"store", Store("create task", storeCause), IsStore, "store failure during create task: connection reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("predicate rejected its own error %v", tt.err)
			}
			if tt.err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", tt.err.Error(), tt.msg)
			}
			// Exactly one predicate matches.
			matches := 0
			for _, p := range []func(error) bool{IsValidation, IsNotFound, IsAuthentication, IsStore} {
				if p(tt.err) {
					matches++
				}
			}
			if matches != 1 {
				t.Errorf("%v matched %d predicates, want 1", tt.err, matches)
			}
		})
	}
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Store("add member", cause)
	if !errors.Is(err, cause) {
		t.Error("StoreError does not unwrap to its cause")
	}
	wrapped := fmt.Errorf("handler: %w", err)
	if !IsStore(wrapped) {
		t.Error("IsStore fails through wrapping")
	}
}
