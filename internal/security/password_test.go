package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	password := "still-waters-run-deep"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == password {
		t.Error("hash equals the plaintext password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword() = true for the wrong password")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
}
