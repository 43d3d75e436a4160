package models

import "time"

type Station struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	StationID    string    `json:"station_id" gorm:"uniqueIndex;size:20;not null"` // human-assigned short code, immutable
	StationName  string    `json:"station_name" gorm:"size:100;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
