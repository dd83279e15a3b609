package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Requester пользователь, выполняющий запрос
type Requester struct {
	UserID domain.UserID
	Role   domain.Role
}

// IsAdmin проверяет административную роль
func (r Requester) IsAdmin() bool {
	return r.Role == domain.RoleAdmin
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Requester Requester
	UserID    domain.UserID
	Status    *string
}

// ListBookingsRequest административный запрос списка бронирований
type ListBookingsRequest struct {
	RoomID *string
	UserID *string
	From   *time.Time
	To     *time.Time
	Status *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		From: r.From,
		To:   r.To,
	}

	if r.RoomID != nil {
		roomID := domain.RoomID(*r.RoomID)
		filter.RoomID = &roomID
	}
	if r.UserID != nil {
		userID := domain.UserID(*r.UserID)
		filter.UserID = &userID
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Username        string     `json:"username"`
	RoomID          string     `json:"roomId"`
	RoomName        string     `json:"roomName"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID.String(),
		UserID:          b.UserID.String(),
		Username:        b.Username,
		RoomID:          b.RoomID.String(),
		RoomName:        b.RoomName,
		StartTime:       b.Start,
		EndTime:         b.End,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
