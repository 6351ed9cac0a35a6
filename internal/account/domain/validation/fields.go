package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ограничения полей.
const (
	MinNameLength     = 3
	MaxNameLength     = 50
	MinPasswordLength = 8
	// MaxPasswordBytes - предел bcrypt, байты сверх него хешем не учитываются.
	MaxPasswordBytes = 72
)

// Rule проверяет значение поля и возвращает его нормализованную форму.
// Ошибка правила - значение Reason.
type Rule func(value string) (string, error)

// ValidateName проверяет отображаемое имя.
// Имя возвращается без изменений: без обрезки и смены регистра.
func ValidateName(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", ReasonInvalidName
	}

	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return "", ReasonInvalidName
	}

	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsSpace(first) {
		return "", ReasonInvalidName
	}

	if strings.ContainsAny(name, "\r\n") {
		return "", ReasonInvalidName
	}

	return name, nil
}

// ValidatePassword проверяет пароль при регистрации.
// Правило не зависит от правила имени.
func ValidatePassword(password string) (string, error) {
	if !utf8.ValidString(password) {
		return "", ReasonInvalidPassword
	}

	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return "", ReasonInvalidPassword
	}

	first, _ := utf8.DecodeRuneInString(password)
	last, _ := utf8.DecodeLastRuneInString(password)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return "", ReasonInvalidPassword
	}

	if strings.ContainsAny(password, "\r\n") {
		return "", ReasonInvalidPassword
	}

	return password, nil
}

// ValidateLoginPassword проверяет только наличие пароля при входе.
func ValidateLoginPassword(password string) (string, error) {
	if password == "" {
		return "", ReasonInvalidPassword
	}
	return password, nil
}
