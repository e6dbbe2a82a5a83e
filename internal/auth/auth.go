package auth

import (
	"golang.org/x/crypto/bcrypt"
)

type Core struct{}

func New() *Core {
	return &Core{}
}

func (c *Core) Hash(pswd string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pswd), bcrypt.DefaultCost)
	return string(bytes), err
}

func (c *Core) ComparePasswords(hashed, pswd []byte) error {
	if err := bcrypt.CompareHashAndPassword(hashed, pswd); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
