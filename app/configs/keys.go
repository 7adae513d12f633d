package configs

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"
)

func GenerateJWTSecret() (string, error) {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return "", errors.New("failed to generate random key")
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func GenerateAndPrintKeys() error {
	secret, err := GenerateJWTSecret()
	if err != nil {
		return err
	}
	fmt.Println("Add the following line to your .env file:")
	fmt.Printf("JWT_SECRET=%s\n", secret)
	return nil
}
