package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountapi/internal/account/domain/validation"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		expected string
	}{
		{name: "Success - plain name", input: "John Smith", expected: "John Smith"},
		{name: "Success - exactly minimum", input: "Jon", expected: "Jon"},
		{name: "Success - exactly maximum", input: strings.Repeat("a", 50), expected: strings.Repeat("a", 50)},
		{name: "Success - multibyte runes counted once", input: "Жан", expected: "Жан"},
		{name: "Success - trailing space kept", input: "John ", expected: "John "},
		{name: "Success - case kept", input: "JOHN smith", expected: "JOHN smith"},
		{name: "Error - too short", input: "Jo", wantErr: true},
		{name: "Error - empty", input: "", wantErr: true},
		{name: "Error - too long", input: strings.Repeat("a", 51), wantErr: true},
		{name: "Error - whitespace only", input: "     ", wantErr: true},
		{name: "Error - leading space", input: " John", wantErr: true},
		{name: "Error - leading tab", input: "\tJohn", wantErr: true},
		{name: "Error - line break", input: "John\nSmith", wantErr: true},
		{name: "Error - invalid utf8", input: "Jo\xff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ValidateName(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, validation.ReasonInvalidName)
				assert.ErrorIs(t, err, validation.ErrRejected)
				assert.Empty(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Success - typical password", input: "Secret123"},
		{name: "Success - exactly minimum", input: "abcdefgh"},
		{name: "Success - inner spaces", input: "correct horse battery"},
		{name: "Success - exactly 72 bytes", input: strings.Repeat("p", 72)},
		{name: "Success - multibyte runes", input: "пароль12"},
		{name: "Error - shorter than minimum", input: "Sec123", wantErr: true},
		{name: "Error - three characters", input: "abc", wantErr: true},
		{name: "Error - empty", input: "", wantErr: true},
		{name: "Error - blank", input: "          ", wantErr: true},
		{name: "Error - leading space", input: " Secret123", wantErr: true},
		{name: "Error - trailing space", input: "Secret123 ", wantErr: true},
		{name: "Error - line break", input: "Secret\n123", wantErr: true},
		{name: "Error - carriage return", input: "Secret\r123", wantErr: true},
		{name: "Error - over bcrypt limit", input: strings.Repeat("p", 73), wantErr: true},
		{name: "Error - invalid utf8", input: "Secret12\xff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ValidatePassword(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, validation.ReasonInvalidPassword)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestValidateLoginPassword(t *testing.T) {
	got, err := validation.ValidateLoginPassword("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	got, err = validation.ValidateLoginPassword(" padded ")
	require.NoError(t, err)
	assert.Equal(t, " padded ", got)

	_, err = validation.ValidateLoginPassword("")
	assert.ErrorIs(t, err, validation.ReasonInvalidPassword)
}

func TestNameAndPasswordRulesAreIndependent(t *testing.T) {
	// Валидное имя не является валидным паролем.
	_, err := validation.ValidateName("Bob")
	require.NoError(t, err)
	_, err = validation.ValidatePassword("Bob")
	assert.ErrorIs(t, err, validation.ReasonInvalidPassword)

	// Валидный пароль не является валидным именем.
	long := strings.Repeat("x", 60)
	_, err = validation.ValidatePassword(long)
	require.NoError(t, err)
	_, err = validation.ValidateName(long)
	assert.ErrorIs(t, err, validation.ReasonInvalidName)
}
