package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Symptoms string   `gorm:"type:text;not null" json:"symptoms"`
	Time     string   `gorm:"size:32;not null" json:"time"`
	History  []string `gorm:"serializer:json;type:text" json:"history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
