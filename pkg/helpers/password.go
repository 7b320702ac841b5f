package helpers

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor. Raising it slows brute-force attempts
// at the price of CPU per login; existing hashes keep the cost they were
// created with.
var HashCost = bcrypt.DefaultCost

// HashPassword hashes the plain text password using bcrypt. The embedded
// random salt makes repeated calls on the same input produce distinct hashes.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// A malformed hash yields false rather than an error, so callers cannot
// distinguish it from a wrong password.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
