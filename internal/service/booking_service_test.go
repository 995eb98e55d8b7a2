package service

import (
	"errors"
	"strings"
	"testing"
)

func TestUniqueBookingReferenceRetriesCollisions(t *testing.T) {
	calls := 0
	reference, err := uniqueBookingReference(func(string) (bool, error) {
		calls++
		// The first two draws land on already-used references
		return calls <= 2, nil
	})
	if err != nil {
		t.Fatalf("uniqueBookingReference() error = %v, want none", err)
	}
	if calls != 3 {
		t.Errorf("lookups = %d, want 3", calls)
	}
	if parts := strings.Split(reference, "-"); len(parts) != 3 {
		t.Errorf("reference = %q, want adjective-noun-NN shape", reference)
	}
}

func TestUniqueBookingReferenceGivesUpEventually(t *testing.T) {
	calls := 0
	_, err := uniqueBookingReference(func(string) (bool, error) {
		calls++
		return true, nil
	})
	if err == nil {
		t.Fatal("uniqueBookingReference() error = nil, want error when every reference is taken")
	}
	if calls != maxReferenceAttempts {
		t.Errorf("lookups = %d, want %d", calls, maxReferenceAttempts)
	}
}

func TestUniqueBookingReferencePropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("lookup failed")
	_, err := uniqueBookingReference(func(string) (bool, error) {
		return false, lookupErr
	})
	if !errors.Is(err, lookupErr) {
		t.Errorf("uniqueBookingReference() error = %v, want %v", err, lookupErr)
	}
}
