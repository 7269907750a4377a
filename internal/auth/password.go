package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword проверяет сложность пароля
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

// AdminCredentials - единственная пара логин/пароль администратора.
// Пароль хранится только в виде bcrypt-хеша от SHA-256 дайджеста,
// поэтому длина ADMIN_PASS не ограничена 72 байтами bcrypt.
type AdminCredentials struct {
	username     string
	passwordHash string
}

func NewAdminCredentials(username, password string) (*AdminCredentials, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}

	hash, err := HashPassword(digest(password))
	if err != nil {
		return nil, err
	}

	return &AdminCredentials{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Verify сравнивает логин за постоянное время и всегда проверяет хеш
func (a *AdminCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := CheckPasswordHash(digest(password), a.passwordHash)
	return userOK && passOK
}

// Username возвращает логин администратора
func (a *AdminCredentials) Username() string {
	return a.username
}

// digest сводит пароль любой длины к 64 hex-символам
func digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
