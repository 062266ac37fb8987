package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	svc "realtydesk/internal/estate/ports/services"
	"realtydesk/pkg/logger"
)

const (
	methodCreateUser         = "Create"
	methodUpdateUserName     = "UpdateName"
	methodUpdateUserEmail    = "UpdateEmail"
	methodUpdateUserPhone    = "UpdatePhone"
	methodUpdateUserPassword = "UpdatePassword"

	msgCreatingUser      = "creating user"
	msgInvalidUserField  = "invalid user field provided"
	msgLoginAlreadyTaken = "login is already taken"
	msgUserCreated       = "user created successfully"
	msgUpdatingUser      = "updating user"
	msgUserFieldSame     = "field already has the requested value"
	msgWrongOldPassword  = "wrong old password provided"
	msgUserUpdated       = "user updated successfully"

	msgErrHashingPassword   = "failed to hash password"
	msgErrVerifyingPassword = "error verifying password"
	msgErrBeginningTx       = "failed to begin transaction"
	msgErrLockingUser       = "failed to lock user"
	msgErrFindingUser       = "failed to find user"
	msgErrCheckingLogin     = "failed to check login"
	msgErrUpsertingUser     = "failed to upsert user"
	msgErrCommittingTx      = "failed to commit transaction"

	errCtxValidatingUser   = "validating user"
	errCtxHashingPassword  = "hashing password"
	errCtxBeginningTx      = "beginning transaction"
	errCtxLockingUser      = "locking user"
	errCtxCheckingLogin    = "checking login"
	errCtxFindingUser      = "finding user"
	errCtxUpsertingUser    = "upserting user"
	errCtxCommittingTx     = "committing transaction"
	errCtxVerifyingOldPass = "verifying old password"
	errCtxVerifyingNewPass = "verifying new password"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	storage   repositories.Storage
	passwords svc.PasswordService
}

// NewUserUseCase создает новый экземпляр сценариев работы с пользователями.
func NewUserUseCase(storage repositories.Storage, passwords svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		storage:   storage,
		passwords: passwords,
	}
}

// Create регистрирует нового пользователя.
// Уникальность логина проверяется в транзакции под блокировкой
// ключа логина, поэтому конкурирующие регистрации сериализуются.
func (u *UserUseCaseImpl) Create(ctx context.Context, cmd api.CreateUser) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("login", cmd.Login))
	log.Debug(ctx, msgCreatingUser)

	if err := entities.ValidatePassword(cmd.Password); err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	hash, err := u.passwords.HashPassword(ctx, cmd.Password)
	if err != nil {
		log.Error(ctx, msgErrHashingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := entities.NewUser(cmd.Name, cmd.Login, hash, cmd.Email, cmd.Phone)
	if err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	tx, err := u.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Users().LockCreation(ctx, cmd.Login); err != nil {
		log.Error(ctx, msgErrLockingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingUser, err)
	}

	_, err = tx.Users().FindByLogin(ctx, cmd.Login)
	if err == nil {
		log.Debug(ctx, msgLoginAlreadyTaken)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingLogin, entities.ErrLoginOccupied)
	}
	if !errors.Is(err, entities.ErrUserNotExists) {
		log.Error(ctx, msgErrCheckingLogin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingLogin, err)
	}

	if err := tx.Users().Upsert(ctx, user); err != nil {
		log.Error(ctx, msgErrUpsertingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingUser, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("userID", user.ID.String()))
	return user, nil
}

// UpdateName меняет имя пользователя.
// Совпадающее имя завершает команду успехом без записи.
func (u *UserUseCaseImpl) UpdateName(ctx context.Context, cmd api.UpdateUserName) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUserName), zap.String("userID", cmd.UserID.String()))
	log.Debug(ctx, msgUpdatingUser)

	if err := entities.ValidateUserName(cmd.Name); err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	return u.updateUser(ctx, log, cmd.UserID, func(user *entities.User) (bool, error) {
		if user.Name == cmd.Name {
			return false, nil
		}
		user.Name = cmd.Name
		return true, nil
	})
}

// UpdateEmail меняет адрес почты пользователя.
// Совпадающий адрес завершает команду успехом без записи.
func (u *UserUseCaseImpl) UpdateEmail(ctx context.Context, cmd api.UpdateUserEmail) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUserEmail), zap.String("userID", cmd.UserID.String()))
	log.Debug(ctx, msgUpdatingUser)

	if err := entities.ValidateEmail(cmd.Email); err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	return u.updateUser(ctx, log, cmd.UserID, func(user *entities.User) (bool, error) {
		if user.Email != nil && *user.Email == cmd.Email {
			return false, nil
		}
		email := cmd.Email
		user.Email = &email
		return true, nil
	})
}

// UpdatePhone меняет телефон пользователя.
// Совпадающий номер завершает команду успехом без записи.
func (u *UserUseCaseImpl) UpdatePhone(ctx context.Context, cmd api.UpdateUserPhone) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUserPhone), zap.String("userID", cmd.UserID.String()))
	log.Debug(ctx, msgUpdatingUser)

	if err := entities.ValidatePhone(cmd.Phone); err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	return u.updateUser(ctx, log, cmd.UserID, func(user *entities.User) (bool, error) {
		if user.Phone != nil && *user.Phone == cmd.Phone {
			return false, nil
		}
		phone := cmd.Phone
		user.Phone = &phone
		return true, nil
	})
}

// UpdatePassword меняет пароль пользователя после проверки старого.
// Новый пароль, совпадающий с текущим, завершает команду успехом без записи.
func (u *UserUseCaseImpl) UpdatePassword(ctx context.Context, cmd api.UpdateUserPassword) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUserPassword), zap.String("userID", cmd.UserID.String()))
	log.Debug(ctx, msgUpdatingUser)

	if err := entities.ValidatePassword(cmd.NewPassword); err != nil {
		log.Debug(ctx, msgInvalidUserField, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	return u.updateUser(ctx, log, cmd.UserID, func(user *entities.User) (bool, error) {
		ok, err := u.passwords.VerifyPassword(ctx, cmd.OldPassword, user.PasswordHash)
		if err != nil {
			log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
			return false, fmt.Errorf("%s: %w", errCtxVerifyingOldPass, err)
		}
		if !ok {
			log.Debug(ctx, msgWrongOldPassword)
			return false, fmt.Errorf("%s: %w", errCtxVerifyingOldPass, entities.ErrWrongPassword)
		}

		same, err := u.passwords.VerifyPassword(ctx, cmd.NewPassword, user.PasswordHash)
		if err != nil {
			log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
			return false, fmt.Errorf("%s: %w", errCtxVerifyingNewPass, err)
		}
		if same {
			return false, nil
		}

		hash, err := u.passwords.HashPassword(ctx, cmd.NewPassword)
		if err != nil {
			log.Error(ctx, msgErrHashingPassword, zap.Error(err))
			return false, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hash
		return true, nil
	})
}

// updateUser выполняет протокол обновления пользователя: блокировка ключа,
// повторное чтение под блокировкой, мутация и запись. Если mutate сообщает,
// что изменений нет, команда завершается успехом без фиксации транзакции.
func (u *UserUseCaseImpl) updateUser(
	ctx context.Context,
	log *logger.Logger,
	userID uuid.UUID,
	mutate func(*entities.User) (bool, error),
) (*entities.User, error) {
	tx, err := u.storage.Begin(ctx)
	if err != nil {
		log.Error(ctx, msgErrBeginningTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxBeginningTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Users().Lock(ctx, userID); err != nil {
		log.Error(ctx, msgErrLockingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLockingUser, err)
	}

	user, err := tx.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotExists) {
			log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	changed, err := mutate(user)
	if err != nil {
		return nil, err
	}
	if !changed {
		log.Debug(ctx, msgUserFieldSame)
		return user, nil
	}

	if err := tx.Users().Upsert(ctx, user); err != nil {
		log.Error(ctx, msgErrUpsertingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpsertingUser, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, msgErrCommittingTx, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCommittingTx, err)
	}

	log.Info(ctx, msgUserUpdated)
	return user, nil
}
