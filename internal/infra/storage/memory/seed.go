package memory

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/user"
)

// SeedPassword пароль стартовых пользователей
const SeedPassword = "password"

// Стартовые идентификаторы, их можно сразу передавать в X-User-ID
const (
	SeedAdminID  domain.UserID = "1"
	SeedClientID domain.UserID = "2"
)

var seedRooms = []domain.Room{
	{
		ID:          "1",
		Name:        "Conference Room A",
		Description: "Large conference room with projector and whiteboard, perfect for team meetings and presentations.",
	},
	{
		ID:          "2",
		Name:        "Private Office",
		Description: "Quiet private office space ideal for focused work, calls, and small meetings.",
	},
	{
		ID:          "3",
		Name:        "Creative Studio",
		Description: "Open creative space with flexible seating, ideal for brainstorming and collaborative work.",
	},
}

// Seed добавляет администратора, клиента и комнаты по умолчанию
// Уже существующие записи пропускаются, повторный вызов ничего не меняет
func (s *Store) Seed(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("Seed - hash password: %w", err)
	}

	users := []domain.User{
		{ID: SeedAdminID, Username: "admin", PasswordHash: string(hash), Role: domain.RoleAdmin},
		{ID: SeedClientID, Username: "client1", PasswordHash: string(hash), Role: domain.RoleClient},
	}
	for _, user := range users {
		if _, err := s.Users().GetByID(ctx, user.ID); err == nil {
			continue
		}
		if _, err := s.Users().Create(ctx, &user); err != nil && !errors.Is(err, userRepo.ErrUsernameTaken) {
			return fmt.Errorf("Seed - user %s: %w", user.Username, err)
		}
	}

	for _, room := range seedRooms {
		if _, err := s.Rooms().GetByID(ctx, room.ID); !errors.Is(err, roomRepo.ErrRoomNotFound) {
			continue
		}
		if _, err := s.Rooms().Create(ctx, &room); err != nil {
			return fmt.Errorf("Seed - room %s: %w", room.Name, err)
		}
	}

	return nil
}
