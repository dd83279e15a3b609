package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/room"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/rooms/models"
)

// Service сервис справочника комнат
// Комнаты кэшируются по ID: их читает каждая попытка бронирования,
// а меняет только администратор
type Service struct {
	roomRepo RoomRepository
	cache    *cache.Cache
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
// ttl <= 0 отключает кэш
func NewService(roomRepo RoomRepository, ttl time.Duration, logger Logger) *Service {
	s := &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// Create создает комнату
func (s *Service) Create(ctx context.Context, req *models.RoomRequest) (*domain.Room, error) {
	if err := validateRoomRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	room := &domain.Room{
		ID:          domain.RoomID(uuid.NewString()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created room id=%s name=%q", created.ID, created.Name)
	return created, nil
}

// Get возвращает комнату по ID, используя кэш
func (s *Service) Get(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(id.String()); ok {
			room := cached.(domain.Room)
			return &room, nil
		}
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Get: repository error for room id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.SetDefault(id.String(), *room)
	}

	return room, nil
}

// List возвращает все комнаты
func (s *Service) List(ctx context.Context) ([]*domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return rooms, nil
}

// Update обновляет комнату и сбрасывает её запись в кэше
// Уже созданные бронирования хранят прежнее название комнаты
func (s *Service) Update(ctx context.Context, id domain.RoomID, req *models.RoomRequest) (*domain.Room, error) {
	if err := validateRoomRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for room id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.roomRepo.Update(ctx, &domain.Room{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
	})
	s.invalidate(id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("Update: room id=%s not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Update: repository error for room id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated room id=%s", id)
	return updated, nil
}

// Delete удаляет комнату
func (s *Service) Delete(ctx context.Context, id domain.RoomID) error {
	err := s.roomRepo.Delete(ctx, id)
	s.invalidate(id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("Delete: room id=%s not found", id)
			return ErrRoomNotFound
		}
		s.logger.Error("Delete: repository error for room id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted room id=%s", id)
	return nil
}

func (s *Service) invalidate(id domain.RoomID) {
	if s.cache != nil {
		s.cache.Delete(id.String())
	}
}

func validateRoomRequest(req *models.RoomRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxRoomNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxRoomNameLength)
	}
	if len(req.Description) > domain.MaxRoomDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxRoomDescriptionLength)
	}

	return nil
}
