package config

import (
	"fmt"

	"accountapi/internal/account/domain/validation"
)

// ValidationConfig задает профили проверки email и режим отчета об ошибках.
type ValidationConfig struct {
	RegistrationEmailProfile string `yaml:"registration_email_profile" env:"ACCOUNT_VALIDATION_REGISTRATION_EMAIL_PROFILE" env-default:"strict"`
	UpdateEmailProfile       string `yaml:"update_email_profile" env:"ACCOUNT_VALIDATION_UPDATE_EMAIL_PROFILE" env-default:"strict"`
	LoginEmailProfile        string `yaml:"login_email_profile" env:"ACCOUNT_VALIDATION_LOGIN_EMAIL_PROFILE" env-default:"strict"`
	ReportAll                bool   `yaml:"report_all" env:"ACCOUNT_VALIDATION_REPORT_ALL" env-default:"false"`
}

// Options преобразует настройки в validation.Options.
func (v *ValidationConfig) Options() (validation.Options, error) {
	var opts validation.Options
	var err error

	if opts.RegistrationEmail, err = validation.ParseEmailProfile(v.RegistrationEmailProfile); err != nil {
		return opts, fmt.Errorf("registration email profile: %w", err)
	}
	if opts.UpdateEmail, err = validation.ParseEmailProfile(v.UpdateEmailProfile); err != nil {
		return opts, fmt.Errorf("update email profile: %w", err)
	}
	if opts.LoginEmail, err = validation.ParseEmailProfile(v.LoginEmailProfile); err != nil {
		return opts, fmt.Errorf("login email profile: %w", err)
	}
	opts.ReportAll = v.ReportAll

	return opts, nil
}
