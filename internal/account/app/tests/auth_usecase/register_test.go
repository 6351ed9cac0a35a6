package authusecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"accountapi/internal/account/app"
	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/services"
	"accountapi/internal/account/domain/validation"
)

var errDatabase = errors.New("database error")

func TestRegister(t *testing.T) {
	const (
		canonicalEmail = "a@b.example.com"
		hashedPassword = "hashed_password"
		generatedID    = "generated-user-id"
	)

	now := time.Now()
	createdUser := &entities.User{
		ID:           generatedID,
		Name:         "John Smith",
		Email:        canonicalEmail,
		Role:         entities.RoleUser,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	validInput := validation.RegistrationInput{Name: "John Smith", Email: "A@B.example.com", Password: "Secret123"}

	tests := []struct {
		name         string
		input        validation.RegistrationInput
		setupMocks   func(m *mocks)
		expectedUser *entities.User
		expectedErr  error
		rejection    *validation.Rejection
	}{
		{
			name:  "Success - user registered with canonical email",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(nil, entities.ErrUserNotFound).Once()
				m.passwordSvc.On("Hash", mock.Anything, "Secret123").Return(hashedPassword, nil).Once()
				m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == canonicalEmail && u.Name == "John Smith" &&
						u.PasswordHash == hashedPassword && u.Role == entities.RoleUser
				})).Return(createdUser, nil).Once()
			},
			expectedUser: createdUser,
		},
		{
			name:       "Error - short name rejected before any collaborator",
			input:      validation.RegistrationInput{Name: "Jo", Email: "a@b.example.com", Password: "Secret123"},
			setupMocks: func(_ *mocks) {},
			rejection:  &validation.Rejection{Field: validation.FieldName, Reason: validation.ReasonInvalidName},
		},
		{
			name:       "Error - consecutive dots in email",
			input:      validation.RegistrationInput{Name: "John", Email: "a..b@example.com", Password: "Secret123"},
			setupMocks: func(_ *mocks) {},
			rejection:  &validation.Rejection{Field: validation.FieldEmail, Reason: validation.ReasonInvalidLocalPart},
		},
		{
			name:       "Error - password shorter than minimum",
			input:      validation.RegistrationInput{Name: "John", Email: "a@b.example.com", Password: "Sec1"},
			setupMocks: func(_ *mocks) {},
			rejection:  &validation.Rejection{Field: validation.FieldPassword, Reason: validation.ReasonInvalidPassword},
		},
		{
			name:  "Error - email already exists",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(createdUser, nil).Once()
			},
			expectedErr: services.ErrEmailAlreadyExists,
		},
		{
			name:  "Error - unique violation on insert",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(nil, entities.ErrUserNotFound).Once()
				m.passwordSvc.On("Hash", mock.Anything, "Secret123").Return(hashedPassword, nil).Once()
				m.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrEmailAlreadyExists).Once()
			},
			expectedErr: services.ErrEmailAlreadyExists,
		},
		{
			name:  "Error - lookup fails",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(nil, errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
		{
			name:  "Error - hashing fails",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(nil, entities.ErrUserNotFound).Once()
				m.passwordSvc.On("Hash", mock.Anything, "Secret123").Return("", services.ErrHashingFailed).Once()
			},
			expectedErr: services.ErrHashingFailed,
		},
		{
			name:  "Error - create fails",
			input: validInput,
			setupMocks: func(m *mocks) {
				m.userRepo.On("FindByEmail", mock.Anything, canonicalEmail).Return(nil, entities.ErrUserNotFound).Once()
				m.passwordSvc.On("Hash", mock.Anything, "Secret123").Return(hashedPassword, nil).Once()
				m.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()
			},
			expectedErr: errDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)

			useCase := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc, nil)
			user, err := useCase.Register(context.Background(), tt.input)

			switch {
			case tt.rejection != nil:
				var rejection *validation.Rejection
				require.ErrorAs(t, err, &rejection)
				assert.Equal(t, *tt.rejection, *rejection)
				assert.Nil(t, user)
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}

			m.assertExpectations(t)
		})
	}
}

func TestRegisterAggregatesRejections(t *testing.T) {
	v, err := validation.New(validation.Options{ReportAll: true})
	require.NoError(t, err)

	m := newMocks()
	useCase := app.NewAuthUseCase(m.userRepo, m.tokenRepo, m.passwordSvc, m.tokenSvc, v)

	_, err = useCase.Register(context.Background(), validation.RegistrationInput{Name: "", Email: "", Password: ""})

	rs, ok := validation.AsRejections(err)
	require.True(t, ok)
	assert.Len(t, rs, 3)
	m.assertExpectations(t)
}
