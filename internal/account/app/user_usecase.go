package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"accountapi/internal/account/domain/entities"
	"accountapi/internal/account/domain/services"
	"accountapi/internal/account/domain/validation"
	"accountapi/internal/account/ports/api"
	"accountapi/internal/account/ports/cache"
	"accountapi/internal/account/ports/repositories"
	"accountapi/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"
	methodUpdateProfile  = "UpdateProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgProfileFromCache    = "user profile served from cache"
	msgUpdatingProfile     = "updating user profile"
	msgEmptyUpdate         = "profile update carries no fields"
	msgEmailTaken          = "new email already belongs to another user"
	msgProfileUpdated      = "user profile updated successfully"
	msgRevokingSessions    = "email changed, revoking refresh tokens"

	msgErrFindingUserByID  = "failed to find user by ID"
	msgErrCacheRead        = "failed to read profile cache"
	msgErrCacheWrite       = "failed to write profile cache"
	msgErrCacheInvalidate  = "failed to invalidate profile cache"
	msgErrCheckingEmail    = "failed to check email uniqueness"
	msgErrUpdatingUser     = "failed to update user"
	msgErrLoadingForUpdate = "failed to load user for update"
	msgErrRevokingTokens   = "failed to revoke refresh tokens"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"
	errCtxLoadingUser      = "loading user"
	errCtxCheckingEmail    = "checking email uniqueness"
	errCtxEmailTaken       = "email already taken"
	errCtxUpdatingUser     = "updating user"
	errCtxRevokingTokens   = "revoking refresh tokens"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	cache     cache.ProfileCache
	validator *validation.Validator
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
// profileCache может быть nil, тогда профиль всегда читается из хранилища.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	profileCache cache.ProfileCache,
	validator *validation.Validator,
) api.UserUseCase {
	if validator == nil {
		validator = validation.Default()
	}
	return &UserUseCaseImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cache:     profileCache,
		validator: validator,
	}
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if u.cache != nil {
		cached, err := u.cache.Get(ctx, userID)
		switch {
		case err == nil:
			log.Debug(ctx, msgProfileFromCache)
			return cached, nil
		case !errors.Is(err, services.ErrProfileCacheMiss):
			log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		}
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	if u.cache != nil {
		if err := u.cache.SetIfAbsent(ctx, user); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}

	log.Info(ctx, msgProfileRetrieved)
	return user, nil
}

// UpdateProfile применяет только переданные поля профиля.
// Новый email проверяется на уникальность в канонической форме.
func (u *UserUseCaseImpl) UpdateProfile(
	ctx context.Context,
	userID string,
	in validation.ProfileUpdateInput,
) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	update, err := u.validator.ValidateProfileUpdate(in)
	if err != nil {
		logRejection(ctx, log, err)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrLoadingForUpdate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingUser, err)
	}

	if update.Empty() {
		log.Debug(ctx, msgEmptyUpdate)
		return user, nil
	}

	emailChanged := update.Email != nil && update.Email.String() != user.Email
	if emailChanged {
		owner, err := u.userRepo.FindByEmail(ctx, update.Email.String())
		if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
			log.Error(ctx, msgErrCheckingEmail, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
		}
		if owner != nil && owner.ID != user.ID {
			log.Debug(ctx, msgEmailTaken)
			return nil, fmt.Errorf("%s: %w", errCtxEmailTaken, services.ErrEmailAlreadyExists)
		}
	}

	// Смена email меняет учетные данные входа, выданные ранее сессии отзываются.
	if emailChanged {
		log.Info(ctx, msgRevokingSessions)
		if err := u.tokenRepo.RevokeAllUserTokens(ctx, user.ID); err != nil {
			log.Error(ctx, msgErrRevokingTokens, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxRevokingTokens, err)
		}
	}

	changed := *user
	if update.Name != nil {
		changed.Name = *update.Name
	}
	if update.Email != nil {
		changed.Email = update.Email.String()
	}

	updated, err := u.userRepo.Update(ctx, &changed)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailTaken)
			return nil, fmt.Errorf("%s: %w", errCtxEmailTaken, err)
		}
		log.Error(ctx, msgErrUpdatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, updated); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
			if err := u.cache.Invalidate(ctx, userID); err != nil {
				log.Warn(ctx, msgErrCacheInvalidate, zap.Error(err))
			}
		}
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}
