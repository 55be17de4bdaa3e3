package models

import "time"

type TaskReport struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	ReporterID  uint64    `gorm:"not null" json:"reporter_id"`
	ReportType  string    `gorm:"type:varchar(50);not null" json:"report_type"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Task     Task `gorm:"foreignKey:TaskID" json:"-"`
	Reporter User `gorm:"foreignKey:ReporterID" json:"-"`
}
