// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/domain/validation"
	"roster/internal/usecase"

	deliverycontext "roster/internal/delivery/context"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account: field validation, uniqueness pre-checks,
// password hashing and the insert all happen here. The pre-checks and the
// insert share one transaction; a concurrent insert that slips past the
// pre-check still surfaces as the same conflict error via the unique
// constraint.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if result := validation.Validate(input.Username, input.Email, input.Password, input.Nama); !result.OK() {
		srv.log(ctx).Warn("Registration rejected by validation", slog.String("username", input.Username))

		return nil, domainerrors.NewValidationError(result)
	}

	var newUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := srv.checkUsernameFree(ctx, userRepo, input.Username, 0); err != nil {
			return err
		}
		if err := srv.checkEmailFree(ctx, userRepo, input.Email, 0); err != nil {
			return err
		}

		// Hashing is expensive; a registration doomed by a conflict never
		// pays for it.
		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return errors.Wrap(err, "failed to hash password")
		}

		newUser = &entity.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			FullName:     input.Nama,
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", newUser.ID), slog.String("username", newUser.Username))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login authenticates by username and password. Unknown username and wrong
// password are deliberately indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed: unknown username", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{AccessToken: token, User: user.Public()}, nil
}

// ListUsers returns the public view of every account, ordered by ID.
func (srv *accountService) ListUsers(ctx context.Context) ([]entity.PublicView, error) {
	users, err := srv.userRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return entity.PublicViews(users), nil
}

// UpdateUser applies a partial profile update. Omitted fields keep their
// stored values; the merged profile is revalidated and uniqueness is
// re-checked excluding the user's own row. The password is never touched.
func (srv *accountService) UpdateUser(ctx context.Context, id int64, input usecase.UpdateUserInput) (*entity.PublicView, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load user for update")
		}

		username := user.Username
		if input.Username != nil {
			username = *input.Username
		}
		email := user.Email
		if input.Email != nil {
			email = *input.Email
		}
		nama := user.FullName
		if input.Nama != nil {
			nama = *input.Nama
		}

		if result := validation.ValidateProfile(username, email, nama); !result.OK() {
			return domainerrors.NewValidationError(result)
		}

		if username != user.Username {
			if err := srv.checkUsernameFree(ctx, userRepo, username, id); err != nil {
				return err
			}
		}
		if email != user.Email {
			if err := srv.checkEmailFree(ctx, userRepo, email, id); err != nil {
				return err
			}
		}

		user.Username = username
		user.Email = email
		user.FullName = nama

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.Int64("userID", id))

	view := updated.Public()

	return &view, nil
}

// DeleteUser removes the account with the given ID.
func (srv *accountService) DeleteUser(ctx context.Context, id int64) error {
	err := srv.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("userID", id))

	return nil
}

// checkUsernameFree returns ErrUsernameTaken when another user (excluding
// selfID) already holds the username.
func (srv *accountService) checkUsernameFree(ctx context.Context, userRepo repository.UserRepository, username string, selfID int64) error {
	existing, err := userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check username availability")
	}
	if existing.ID != selfID {
		return domainerrors.ErrUsernameTaken
	}

	return nil
}

// checkEmailFree returns ErrEmailTaken when another user (excluding selfID)
// already holds the email address.
func (srv *accountService) checkEmailFree(ctx context.Context, userRepo repository.UserRepository, email string, selfID int64) error {
	existing, err := userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}
	if existing.ID != selfID {
		return domainerrors.ErrEmailTaken
	}

	return nil
}
