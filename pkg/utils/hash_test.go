package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "hunter2-but-longer" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("hunter2-but-longer", hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hashed) {
		t.Error("wrong password accepted")
	}
}
