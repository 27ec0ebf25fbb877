package models

import "time"

// Room is a physical room with a capacity and a type label (e.g.
// "classroom", "laboratory").
type Room struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	SeatsAmount int       `db:"seats_amount" json:"seats_amount"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures list filters for rooms.
type RoomFilter struct {
	Type     string
	MinSeats int
	Page     int
	PageSize int
}
