package dto

import (
	"time"

	"github.com/yukikurage/taskerrand-api/internal/models"
)

type MessageDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	SenderID  uint64    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	PosterID  uint64    `json:"poster_id"`
	SeekerID  uint64    `json:"seeker_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportDTO struct {
	ID          uint64    `json:"id"`
	TaskID      uint64    `json:"task_id"`
	ReporterID  uint64    `json:"reporter_id"`
	ReportType  string    `json:"report_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationDTO struct {
	ID        uint64                  `json:"id"`
	TaskID    *uint64                 `json:"task_id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      models.NotificationType `json:"notif_type"`
	Data      map[string]any          `json:"data,omitempty"`
	Seen      bool                    `json:"seen"`
	CreatedAt time.Time               `json:"created_at"`
}

func ToMessageDTO(m models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		TaskID:    m.TaskID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageDTOs(messages []models.Message) []MessageDTO {
	items := make([]MessageDTO, len(messages))
	for i, m := range messages {
		items[i] = ToMessageDTO(m)
	}
	return items
}

func ToFeedbackDTO(fb models.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:        fb.ID,
		TaskID:    fb.TaskID,
		PosterID:  fb.PosterID,
		SeekerID:  fb.SeekerID,
		Rating:    fb.Rating,
		Comment:   fb.Comment,
		CreatedAt: fb.CreatedAt,
	}
}

func ToFeedbackDTOs(feedback []models.Feedback) []FeedbackDTO {
	items := make([]FeedbackDTO, len(feedback))
	for i, fb := range feedback {
		items[i] = ToFeedbackDTO(fb)
	}
	return items
}

func ToReportDTO(r models.TaskReport) ReportDTO {
	return ReportDTO{
		ID:          r.ID,
		TaskID:      r.TaskID,
		ReporterID:  r.ReporterID,
		ReportType:  r.ReportType,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func ToReportDTOs(reports []models.TaskReport) []ReportDTO {
	items := make([]ReportDTO, len(reports))
	for i, r := range reports {
		items[i] = ToReportDTO(r)
	}
	return items
}

func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      n.Data,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	items := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		items[i] = ToNotificationDTO(n)
	}
	return items
}
