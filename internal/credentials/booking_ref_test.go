package credentials

import (
	"regexp"
	"testing"
)

var referenceFormat = regexp.MustCompile(`^[a-z]+-[a-z]+-\d{2}$`)

func TestGenerateBookingReference(t *testing.T) {
	for i := 0; i < 50; i++ {
		ref, err := GenerateBookingReference()
		if err != nil {
			t.Fatalf("GenerateBookingReference() error = %v", err)
		}
		if !referenceFormat.MatchString(ref) {
			t.Errorf("reference %q does not match adjective-noun-NN", ref)
		}
	}
}

func TestGenerateBookingReferenceVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := GenerateBookingReference()
		if err != nil {
			t.Fatalf("GenerateBookingReference() error = %v", err)
		}
		seen[ref] = true
	}

	// 27000 combinations; 100 draws landing on fewer than 10 distinct values
	// would mean the randomness is broken
	if len(seen) < 10 {
		t.Errorf("100 references produced only %d distinct values", len(seen))
	}
}
