package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeMessage    NotificationType = "message"
	NotificationTypeTaskUpdate NotificationType = "task_update"
	NotificationTypeSystem     NotificationType = "system"
)

type Notification struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	UserID    uint64            `gorm:"not null" json:"user_id"`
	TaskID    *uint64           `json:"task_id"`
	Title     string            `gorm:"type:varchar(255);not null" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	Type      NotificationType  `gorm:"column:notif_type;type:varchar(32);not null" json:"notif_type"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
	Seen      bool              `gorm:"not null;default:false" json:"seen"`
	CreatedAt time.Time         `json:"created_at"`

	// Relations
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Task *Task `gorm:"foreignKey:TaskID" json:"-"`
}
