package domain

import "time"

// Room represents a bookable coworking room
type Room struct {
	ID          RoomID
	Name        string
	Description string
	Image       string // ссылка на изображение, загрузка файлов вне сервиса
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
