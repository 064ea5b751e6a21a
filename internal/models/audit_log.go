package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WidgetID  string `gorm:"size:36;index" json:"widget_id"`
	Action    string `gorm:"size:50;not null" json:"action"`
	Entity    string `gorm:"size:50" json:"entity"`
	EntityKey string `gorm:"size:100" json:"entity_key"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
