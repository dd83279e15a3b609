package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями после их допуска
type Service struct {
	bookingRepo  BookingRepository
	cancelNotice time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// cancelNotice - минимальное время до начала, когда владелец ещё может отменить бронирование
func NewService(bookingRepo BookingRepository, cancelNotice time.Duration, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		cancelNotice: cancelNotice,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор любое
func (s *Service) GetByID(ctx context.Context, id domain.BookingID, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, requester.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requester.UserID && !requester.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if req.UserID != req.Requester.UserID && !req.Requester.IsAdmin() {
		s.logger.Warn("GetUserBookings: access denied for user=%s to bookings of user=%s", req.Requester.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// List возвращает бронирования для администратора с фильтрацией
// по комнате, пользователю, периоду начала и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет активное бронирование
// Владелец может отменить не позднее чем за cancelNotice до начала,
// администратор может отменить любое активное бронирование
func (s *Service) Cancel(ctx context.Context, id domain.BookingID, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, requester.UserID)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	isOwner := booking.UserID == requester.UserID
	if !isOwner && !requester.IsAdmin() {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	if !requester.IsAdmin() && booking.Start.Sub(now) < s.cancelNotice {
		s.logger.Warn("Cancel: booking id=%s starts at %s, too late to cancel", id, booking.Start.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: at least %s before start required", ErrCancelTooLate, s.cancelNotice)
	}

	if err := s.bookingRepo.Cancel(ctx, id, now); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrCannotCancel):
			// статус изменился между чтением и обновлением
			s.logger.Warn("Cancel: booking id=%s is no longer active", id)
			return nil, ErrCannotCancel
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование без следа в истории, только для администратора
func (s *Service) Delete(ctx context.Context, id domain.BookingID) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted booking id=%s", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id domain.BookingID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
