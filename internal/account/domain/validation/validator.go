package validation

import (
	"fmt"
)

// RegistrationInput - непроверенные данные регистрации.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

// Registration - проверенные и нормализованные данные регистрации.
type Registration struct {
	Name     string
	Email    CanonicalEmail
	Password string
}

// ProfileUpdateInput - непроверенные данные обновления профиля.
// nil означает, что поле не передано.
type ProfileUpdateInput struct {
	Name  *string
	Email *string
}

// ProfileUpdate - проверенное обновление профиля.
// Отсутствующие во входе поля остаются nil.
type ProfileUpdate struct {
	Name  *string
	Email *CanonicalEmail
}

// Empty сообщает, что обновление не содержит полей.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil
}

// LoginInput - непроверенные данные входа.
type LoginInput struct {
	Email    string
	Password string
}

// Login - данные входа с нормализованным email. Пароль передается как есть.
type Login struct {
	Email    CanonicalEmail
	Password string
}

// Options настраивает Validator.
type Options struct {
	RegistrationEmail EmailProfile
	UpdateEmail       EmailProfile
	LoginEmail        EmailProfile
	// ReportAll включает отчет обо всех отказах вместо первого.
	ReportAll bool
}

// DefaultOptions возвращает профиль strict для всех операций.
func DefaultOptions() Options {
	return Options{
		RegistrationEmail: ProfileStrict,
		UpdateEmail:       ProfileStrict,
		LoginEmail:        ProfileStrict,
	}
}

// ruleSet сопоставляет поле и его правило.
type ruleSet map[Field]Rule

// Validator собирает правила полей для каждой операции.
// После создания не изменяется и безопасен для конкурентного использования.
type Validator struct {
	registration ruleSet
	update       ruleSet
	login        ruleSet
	reportAll    bool
}

// New создает Validator. Пустые профили в opts заменяются значениями по умолчанию.
func New(opts Options) (*Validator, error) {
	defaults := DefaultOptions()

	profiles := []*EmailProfile{&opts.RegistrationEmail, &opts.UpdateEmail, &opts.LoginEmail}
	fallback := []EmailProfile{defaults.RegistrationEmail, defaults.UpdateEmail, defaults.LoginEmail}
	for i, p := range profiles {
		if *p == "" {
			*p = fallback[i]
			continue
		}
		parsed, err := ParseEmailProfile(string(*p))
		if err != nil {
			return nil, fmt.Errorf("validator options: %w", err)
		}
		*p = parsed
	}

	return &Validator{
		registration: ruleSet{
			FieldName:     ValidateName,
			FieldEmail:    opts.RegistrationEmail.Rule(),
			FieldPassword: ValidatePassword,
		},
		update: ruleSet{
			FieldName:  ValidateName,
			FieldEmail: opts.UpdateEmail.Rule(),
		},
		login: ruleSet{
			FieldEmail:    opts.LoginEmail.Rule(),
			FieldPassword: ValidateLoginPassword,
		},
		reportAll: opts.ReportAll,
	}, nil
}

// Default возвращает Validator с настройками по умолчанию.
func Default() *Validator {
	v, _ := New(DefaultOptions())
	return v
}

// ValidateRegistration проверяет данные регистрации.
func (v *Validator) ValidateRegistration(in RegistrationInput) (Registration, error) {
	out, err := v.apply(v.registration, map[Field]*string{
		FieldName:     &in.Name,
		FieldEmail:    &in.Email,
		FieldPassword: &in.Password,
	})
	if err != nil {
		return Registration{}, err
	}

	return Registration{
		Name:     *out[FieldName],
		Email:    CanonicalEmail(*out[FieldEmail]),
		Password: *out[FieldPassword],
	}, nil
}

// ValidateProfileUpdate проверяет только переданные поля обновления профиля.
func (v *Validator) ValidateProfileUpdate(in ProfileUpdateInput) (ProfileUpdate, error) {
	out, err := v.apply(v.update, map[Field]*string{
		FieldName:  in.Name,
		FieldEmail: in.Email,
	})
	if err != nil {
		return ProfileUpdate{}, err
	}

	var update ProfileUpdate
	if name := out[FieldName]; name != nil {
		update.Name = name
	}
	if email := out[FieldEmail]; email != nil {
		canonical := CanonicalEmail(*email)
		update.Email = &canonical
	}
	return update, nil
}

// ValidateLogin нормализует email и проверяет наличие пароля.
func (v *Validator) ValidateLogin(in LoginInput) (Login, error) {
	out, err := v.apply(v.login, map[Field]*string{
		FieldEmail:    &in.Email,
		FieldPassword: &in.Password,
	})
	if err != nil {
		return Login{}, err
	}

	return Login{
		Email:    CanonicalEmail(*out[FieldEmail]),
		Password: *out[FieldPassword],
	}, nil
}

// apply проверяет переданные поля в порядке fieldOrder.
// Возвращает нормализованные значения или Rejections без частичного результата.
func (v *Validator) apply(rules ruleSet, values map[Field]*string) (map[Field]*string, error) {
	out := make(map[Field]*string, len(values))
	var rejections Rejections

	for _, field := range fieldOrder {
		rule, ok := rules[field]
		if !ok {
			continue
		}
		value := values[field]
		if value == nil {
			continue
		}

		normalized, err := rule(*value)
		if err != nil {
			rejections = append(rejections, Rejection{Field: field, Reason: reasonOf(field, err)})
			if !v.reportAll {
				break
			}
			continue
		}
		out[field] = &normalized
	}

	if len(rejections) > 0 {
		return nil, rejections
	}
	return out, nil
}
