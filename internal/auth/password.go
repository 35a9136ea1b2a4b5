package auth

import "golang.org/x/crypto/bcrypt"

// Passwords are stored only as bcrypt hashes on the user record; plaintext
// never leaves the register/login handlers.

// HashPassword hashes a plaintext password with bcrypt at DefaultCost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword compares a stored hash with a login attempt. A non-nil error
// means the credentials do not match.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
