package domain

import "time"

// AvailableSlot represents a grid cell of a room's day schedule
type AvailableSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
	// Blocked is true when the cell intersects a blackout window rather than a booking
	Blocked bool
}

// DailyUsage is a user's consumption of the daily quota in one room
type DailyUsage struct {
	UserID           UserID
	RoomID           RoomID
	Day              time.Time
	UsedMinutes      int
	QuotaMinutes     int
	RemainingMinutes int
}

// NewDailyUsage computes remaining minutes, never going below zero
func NewDailyUsage(userID UserID, roomID RoomID, day time.Time, used, quota int) DailyUsage {
	remaining := quota - used
	if remaining < 0 {
		remaining = 0
	}
	return DailyUsage{
		UserID:           userID,
		RoomID:           roomID,
		Day:              day,
		UsedMinutes:      used,
		QuotaMinutes:     quota,
		RemainingMinutes: remaining,
	}
}
