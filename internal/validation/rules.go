package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	ozzo "github.com/go-ozzo/ozzo-validation"
)

// Сообщения об ошибках, возвращаемые клиенту в validationErrors
const (
	MsgUsernameNull    = "Username cannot be null"
	MsgNull            = "Cannot be null"
	MsgPasswordPattern = "Password must have at least one uppercase, one lowercase letter and one number"
	MsgUsernameInUse   = "This name is in use"
	MsgImageType       = "Only PNG and JPG files are allowed"
)

// Ограничения длины полей
const (
	MinUsernameLen    = 4
	MaxUsernameLen    = 255
	MinDisplayNameLen = 4
	MaxDisplayNameLen = 255
	MinPasswordLen    = 8
	MaxPasswordLen    = 255
	MinPostLen        = 10
	MaxPostLen        = 5000
)

// SizeMessage возвращает сообщение о нарушении длины поля
func SizeMessage(min, max int) string {
	return fmt.Sprintf("It must have minimum %d and maximum %d characters", min, max)
}

// stringValue извлекает строку из string или *string
// Второе значение false, если значение отсутствует (nil)
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	default:
		return "", false
	}
}

// NotNull проверяет, что поле присутствует в запросе
func NotNull(message string) ozzo.RuleFunc {
	return func(value any) error {
		if _, ok := stringValue(value); !ok {
			return errors.New(message)
		}
		return nil
	}
}

// SizeBetween проверяет длину строки в символах (рунах)
// Отсутствующее значение не проверяется, за это отвечает NotNull.
// В отличие от ozzo.Length, пустая строка тоже считается нарушением.
func SizeBetween(min, max int) ozzo.RuleFunc {
	return func(value any) error {
		s, ok := stringValue(value)
		if !ok {
			return nil
		}
		n := utf8.RuneCountInString(s)
		if n < min || n > max {
			return errors.New(SizeMessage(min, max))
		}
		return nil
	}
}

// PasswordStrength проверяет наличие строчной буквы, заглавной буквы и цифры
func PasswordStrength() ozzo.RuleFunc {
	return func(value any) error {
		s, ok := stringValue(value)
		if !ok {
			return nil
		}
		if !IsStrongPassword(s) {
			return errors.New(MsgPasswordPattern)
		}
		return nil
	}
}

// IsStrongPassword сообщает, содержит ли пароль хотя бы одну строчную,
// одну заглавную латинскую букву и одну цифру ASCII. Остальные символы
// допустимы, но в обязательные классы не засчитываются
func IsStrongPassword(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}
