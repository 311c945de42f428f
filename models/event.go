package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemEvent records a notable administrative action (config change,
// service control, reboot request) for the audit view.
type SystemEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventType   string    `gorm:"not null" json:"event_type"`
	Description string    `json:"description"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *SystemEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ServiceLog is a captured log line attributed to a managed service.
type ServiceLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Service   string    `gorm:"not null;index" json:"service"`
	Level     string    `gorm:"not null" json:"level"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *ServiceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
