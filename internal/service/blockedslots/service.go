package blockedslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/blockedslot"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/blockedslots/models"
)

// Service сервис просмотра и снятия блокировок комнат
// Создание блокировки выполняет usecase create_blocked_slot под блокировкой комнаты
type Service struct {
	repo   BlockedSlotRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockedSlotRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает блокировки, опционально только для одной комнаты
func (s *Service) List(ctx context.Context, roomID *domain.RoomID) (*models.BlockedSlotListResponse, error) {
	slots, err := s.repo.List(ctx, roomID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlockedSlotList(slots), nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, id domain.BlockedSlotID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("Delete: blocked slot id=%s not found", id)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("Delete: repository error for blocked slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted blocked slot id=%s", id)
	return nil
}
