package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword : bcrypt-хэш пароля.
// Открытый текст пароля никогда не сохраняется и не сравнивается напрямую.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем из БД
func CheckPassword(password string, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
