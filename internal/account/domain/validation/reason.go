// Package validation проверяет и нормализует входные данные операций
// регистрации, обновления профиля и входа.
//
// Пакет не выполняет ввод-вывод и не хранит изменяемого состояния:
// все функции и значения Validator безопасны для конкурентного использования.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected - общая ошибка для errors.Is над любым отказом валидации.
var ErrRejected = errors.New("validation rejected")

// Field идентифицирует проверяемое поле запроса.
type Field string

// Поля запроса.
const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// fieldOrder задает порядок проверки и приоритет отказов.
var fieldOrder = [...]Field{FieldName, FieldEmail, FieldPassword}

// Reason - код причины отказа. Reason реализует error,
// поэтому правила полей возвращают его как обычную ошибку.
type Reason string

// Коды причин отказа.
const (
	ReasonInvalidName      Reason = "invalid_name"
	ReasonInvalidEmail     Reason = "invalid_email"
	ReasonInvalidLocalPart Reason = "invalid_local_part"
	ReasonInvalidDomain    Reason = "invalid_domain"
	ReasonInvalidPassword  Reason = "invalid_password"
)

func (r Reason) Error() string {
	return string(r)
}

// Is позволяет сравнивать любой Reason с ErrRejected.
func (r Reason) Is(target error) bool {
	return target == ErrRejected
}

// Rejection описывает отказ по одному полю.
type Rejection struct {
	Field  Field
	Reason Reason
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Field, r.Reason)
}

func (r *Rejection) Error() string {
	return r.String()
}

// Is позволяет проверять отказ через errors.Is(err, ErrRejected).
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// Rejections - упорядоченный (name, email, password) список отказов.
// В режиме первого отказа содержит ровно один элемент.
type Rejections []Rejection

func (rs Rejections) Error() string {
	if len(rs) == 0 {
		return ErrRejected.Error()
	}

	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, r.String())
	}
	return ErrRejected.Error() + ": " + strings.Join(parts, "; ")
}

// Is позволяет проверять отказ через errors.Is(err, ErrRejected).
func (rs Rejections) Is(target error) bool {
	return target == ErrRejected
}

// As извлекает первый отказ для errors.As(err, &rejection) с rejection типа *Rejection.
func (rs Rejections) As(target any) bool {
	t, ok := target.(**Rejection)
	if !ok || len(rs) == 0 {
		return false
	}
	first := rs[0]
	*t = &first
	return true
}

// First возвращает отказ с наивысшим приоритетом.
func (rs Rejections) First() Rejection {
	if len(rs) == 0 {
		return Rejection{}
	}
	return rs[0]
}

// Has сообщает, есть ли отказ по полю.
func (rs Rejections) Has(field Field) bool {
	for _, r := range rs {
		if r.Field == field {
			return true
		}
	}
	return false
}

// Get возвращает причину отказа по полю.
func (rs Rejections) Get(field Field) (Reason, bool) {
	for _, r := range rs {
		if r.Field == field {
			return r.Reason, true
		}
	}
	return "", false
}

// AsRejections извлекает Rejections из цепочки ошибок.
func AsRejections(err error) (Rejections, bool) {
	var rs Rejections
	if errors.As(err, &rs) {
		return rs, true
	}
	return nil, false
}

// reasonOf приводит ошибку правила к коду причины.
// Ошибки, не являющиеся Reason, получают код поля по умолчанию.
func reasonOf(field Field, err error) Reason {
	var reason Reason
	if errors.As(err, &reason) {
		return reason
	}
	switch field {
	case FieldName:
		return ReasonInvalidName
	case FieldPassword:
		return ReasonInvalidPassword
	default:
		return ReasonInvalidEmail
	}
}
