package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Word lists for generating human-friendly booking references
var adjectives = []string{
	"amber", "calm", "cedar", "clear", "coral", "dawn", "dewy", "fern",
	"gentle", "golden", "hazel", "jade", "lunar", "misty", "mossy", "ocean",
	"opal", "pearl", "quiet", "river", "rosy", "sage", "silver", "soft",
	"still", "stone", "sunlit", "tidal", "velvet", "willow",
}

var nouns = []string{
	"birch", "bloom", "breeze", "brook", "cloud", "cove", "crane", "dune",
	"ember", "field", "glade", "grove", "heron", "lake", "leaf", "lotus",
	"meadow", "moon", "moth", "otter", "petal", "pine", "pond", "reed",
	"shell", "spring", "star", "stone", "tide", "wren",
}

// GenerateBookingReference returns a reference of the form
// "adjective-noun-NN", easy to read back over the phone. Not a secret:
// bookings are still addressed by ID internally.
func GenerateBookingReference() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	num, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%02d", adjective, noun, num.Int64()), nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
