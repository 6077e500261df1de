package helper

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := CheckPasswordHash(hash, "s3cret-password"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPasswordHash(hash, "wrong-password"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
