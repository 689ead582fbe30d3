package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword возвращается при попытке хешировать пустой пароль
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher хеширует и проверяет пароли с помощью bcrypt
type PasswordHasher struct {
	dummyHash []byte
	cost      int
}

// NewPasswordHasher создает hasher с указанной стоимостью
// Стоимость вне допустимого диапазона bcrypt заменяется на bcrypt.DefaultCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Хеш той же стоимости, что и хеши пользователей
	dummy, _ := bcrypt.GenerateFromPassword(prehash("shareall-dummy-password"), cost)
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Cost возвращает используемую стоимость bcrypt
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash возвращает соленый bcrypt хеш пароля
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Compare сообщает, соответствует ли пароль хешу
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}

// CompareDummy выполняет одно сравнение с фиксированным хешем
// Вызывается для неизвестного пользователя, чтобы время ответа
// не отличалось от случая с неверным паролем
func (h *PasswordHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, prehash(password))
}

// prehash сводит пароль любой длины к 44 байтам base64(SHA-256)
// bcrypt принимает не больше 72 байт
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}
