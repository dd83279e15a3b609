package domain

import "time"

// BlockedSlot is an admin-defined blackout window in which a room cannot be booked
type BlockedSlot struct {
	ID        BlockedSlotID
	RoomID    RoomID
	RoomName  string
	Start     time.Time
	End       time.Time
	Reason    string
	CreatedAt time.Time
}
