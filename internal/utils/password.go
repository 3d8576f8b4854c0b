package utils

import "golang.org/x/crypto/bcrypt"

// Service keys guard the demo deployment where Supabase JWTs are not in
// play; only the bcrypt hash lives in the environment.

func HashServiceKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

func CheckServiceKey(hash, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}
