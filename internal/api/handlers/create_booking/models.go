package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Время передается в RFC 3339 с часовым поясом
type CreateBookingRequest struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	RoomID    string    `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	RoomID          string `json:"roomId"`
	RoomName        string `json:"roomName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// QuotaExceededResponse тело ответа 422 с остатком квоты
type QuotaExceededResponse struct {
	Error            string `json:"error"`
	RemainingMinutes int    `json:"remainingMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(room *domain.Room, username string) *createBooking.Request {
	return &createBooking.Request{
		UserID:   domain.UserID(r.UserID),
		Username: username,
		RoomID:   room.ID,
		RoomName: room.Name,
		Start:    r.StartTime,
		End:      r.EndTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID.String(),
		UserID:          resp.UserID.String(),
		Username:        resp.Username,
		RoomID:          resp.RoomID.String(),
		RoomName:        resp.RoomName,
		StartTime:       resp.Start.Format(time.RFC3339),
		EndTime:         resp.End.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
