package validation

import (
	"fmt"
	"strings"
)

// Ограничения email.
const (
	MaxEmailLength     = 254
	MaxLocalPartLength = 64
	minTopLevelLength  = 2
)

// CanonicalEmail - email после обрезки пробелов и приведения к нижнему регистру,
// прошедший проверку одним из профилей.
type CanonicalEmail string

func (e CanonicalEmail) String() string {
	return string(e)
}

// EmailProfile - именованная грамматика email.
type EmailProfile string

// Профили email.
const (
	// ProfileStrict требует буквенно-цифровые края локальной части
	// и точечные метки домена.
	ProfileStrict EmailProfile = "strict"
	// ProfilePattern - менее строгая грамматика для обновления профиля.
	ProfilePattern EmailProfile = "pattern"
)

// ParseEmailProfile разбирает имя профиля из конфигурации.
func ParseEmailProfile(name string) (EmailProfile, error) {
	switch p := EmailProfile(strings.ToLower(strings.TrimSpace(name))); p {
	case ProfileStrict, ProfilePattern:
		return p, nil
	default:
		return "", fmt.Errorf("unknown email profile %q", name)
	}
}

// Canonicalize проверяет email выбранным профилем.
// Результат любого профиля проходит и строгую грамматику: профиль pattern
// отвергает с кодом invalid_email адреса, которые она не принимает.
func (p EmailProfile) Canonicalize(raw string) (CanonicalEmail, error) {
	if p != ProfilePattern {
		return StrictEmail(raw)
	}

	email, err := PatternEmail(raw)
	if err != nil {
		return "", err
	}
	if _, err := StrictEmail(email.String()); err != nil {
		return "", ReasonInvalidEmail
	}
	return email, nil
}

// Rule возвращает профиль в виде правила поля.
func (p EmailProfile) Rule() Rule {
	return func(value string) (string, error) {
		email, err := p.Canonicalize(value)
		return string(email), err
	}
}

// NormalizeEmail обрезает пробелы и приводит ASCII-буквы к нижнему регистру.
// Второе значение false, если в адресе есть не-ASCII байты.
func NormalizeEmail(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	b := []byte(s)
	for i, c := range b {
		if c >= 0x80 {
			return "", false
		}
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b), true
}

// StrictEmail проверяет email строгим профилем.
//
// Локальная часть: 1-64 символа, начинается и заканчивается буквой или цифрой,
// внутри допустимы буквы, цифры и !#$%&'*+/=?^_`{|}~.- без двух точек подряд.
// Домен: одна или более меток [a-z0-9-]+ с точкой, затем метка верхнего уровня
// не короче двух букв. Ни одна метка не начинается с дефиса.
func StrictEmail(raw string) (CanonicalEmail, error) {
	email, local, domain, err := splitEmail(raw)
	if err != nil {
		return "", err
	}

	if !isStrictLocalPart(local) {
		return "", ReasonInvalidLocalPart
	}
	if !isStrictDomain(domain) {
		return "", ReasonInvalidDomain
	}

	return CanonicalEmail(email), nil
}

// PatternEmail проверяет email профилем pattern.
//
// Локальная часть: непустая, из тех же символов, без точки в начале и в конце
// и без двух точек подряд. Домен: символы [a-z0-9.-], заканчивается точкой
// и не менее чем двумя буквами, метки непустые и не начинаются с дефиса.
// Любой отказ имеет код invalid_email.
func PatternEmail(raw string) (CanonicalEmail, error) {
	email, local, domain, err := splitEmail(raw)
	if err != nil {
		return "", err
	}

	if !isPatternLocalPart(local) || !isPatternDomain(domain) {
		return "", ReasonInvalidEmail
	}

	return CanonicalEmail(email), nil
}

func splitEmail(raw string) (email, local, domain string, err error) {
	email, ok := NormalizeEmail(raw)
	if !ok || email == "" || len(email) > MaxEmailLength {
		return "", "", "", ReasonInvalidEmail
	}

	at := strings.IndexByte(email, '@')
	if at < 0 || strings.IndexByte(email[at+1:], '@') >= 0 {
		return "", "", "", ReasonInvalidEmail
	}

	return email, email[:at], email[at+1:], nil
}

func isStrictLocalPart(local string) bool {
	n := len(local)
	if n == 0 || n > MaxLocalPartLength {
		return false
	}
	if !isAlnum(local[0]) || !isAlnum(local[n-1]) {
		return false
	}
	return isLocalBody(local)
}

func isPatternLocalPart(local string) bool {
	n := len(local)
	if n == 0 || n > MaxLocalPartLength {
		return false
	}
	if local[0] == '.' || local[n-1] == '.' {
		return false
	}
	return isLocalBody(local)
}

// isLocalBody проверяет алфавит локальной части и отсутствие "..".
func isLocalBody(local string) bool {
	var prev byte
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isAlnum(c) && !isLocalSpecial(c) {
			return false
		}
		if c == '.' && prev == '.' {
			return false
		}
		prev = c
	}
	return true
}

func isStrictDomain(domain string) bool {
	last := strings.LastIndexByte(domain, '.')
	if last <= 0 || !isTopLevel(domain[last+1:]) {
		return false
	}

	for label := range strings.SplitSeq(domain[:last], ".") {
		if label == "" || label[0] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			if c := label[i]; !isAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

func isPatternDomain(domain string) bool {
	last := strings.LastIndexByte(domain, '.')
	if last <= 0 || !isTopLevel(domain[last+1:]) {
		return false
	}

	labelStart := true
	for i := 0; i < last; i++ {
		c := domain[i]
		switch {
		case c == '.':
			if labelStart {
				return false
			}
			labelStart = true
			continue
		case c == '-':
			if labelStart {
				return false
			}
		case !isAlnum(c):
			return false
		}
		labelStart = false
	}
	return !labelStart
}

func isTopLevel(label string) bool {
	if len(label) < minTopLevelLength {
		return false
	}
	for i := 0; i < len(label); i++ {
		if c := label[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}

func isLocalSpecial(c byte) bool {
	return strings.IndexByte("!#$%&'*+/=?^_`{|}~.-", c) >= 0
}
