package domain

// Typed identifiers keep room, user and booking ids from being mixed up at compile time.

// RoomID identifies a Room
type RoomID string

// UserID identifies a User
type UserID string

// BookingID identifies a Booking
type BookingID string

// BlockedSlotID identifies a BlockedSlot
type BlockedSlotID string

func (id RoomID) String() string        { return string(id) }
func (id UserID) String() string        { return string(id) }
func (id BookingID) String() string     { return string(id) }
func (id BlockedSlotID) String() string { return string(id) }
