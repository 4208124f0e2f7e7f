package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   string `gorm:"size:64" json:"userId"`
	Entity   string `gorm:"size:50;not null" json:"entity"` // "project", "template", "department", "team"
	EntityID string `gorm:"size:64" json:"entityId"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "toggle_milestone" и т.п.
	Details  string `gorm:"type:text" json:"details"`
}
