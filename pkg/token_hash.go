package pkg

import "golang.org/x/crypto/bcrypt"

const tokenHashCost = 12

// HashToken returns the bcrypt hash of an API token, as stored in config/env.
func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), tokenHashCost)
	return BytesToString(bytes), err
}

func CheckTokenHash(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
