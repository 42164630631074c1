package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Small helper for producing a bcrypt hash to seed the first admin account.
func generatePasswordHash(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func main() {
	password := "AdminCryptoBet2026!"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	hash, _ := generatePasswordHash(password, 12)
	fmt.Println(hash)
}
