package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/users/models"
)

// Service сервис управления пользователями
type Service struct {
	userRepo   UserRepository
	bcryptCost int
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// Create создает пользователя, пароль хранится только в виде bcrypt хэша
// Пустая роль означает client
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleClient
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Create: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Create - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			s.logger.Warn("Create: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created user id=%s username=%s role=%s", user.ID, user.Username, user.Role)
	return models.FromDomainUser(user), nil
}

// Get возвращает пользователя по ID
func (s *Service) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Get: repository error for user id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return user, nil
}

// List возвращает всех пользователей
func (s *Service) List(ctx context.Context) (*models.UserListResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainUserList(users), nil
}

// Delete удаляет пользователя, его бронирования остаются в истории
func (s *Service) Delete(ctx context.Context, id domain.UserID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Delete: user id=%s not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("Delete: repository error for user id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted user id=%s", id)
	return nil
}

func validateCreateRequest(req *models.CreateUserRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput,
			domain.MinUsernameLength, domain.MaxUsernameLength)
	}

	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	// bcrypt отклоняет пароли длиннее 72 байт
	if len(req.Password) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
	}

	if req.Role != "" && !domain.Role(req.Role).IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	return nil
}
