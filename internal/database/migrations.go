package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskerrand-api/internal/models"
	"gorm.io/gorm"
)

type index struct {
	model   any
	table   string
	name    string
	columns string
}

var indexes = []index{
	// Task listing and lifecycle lookups
	{&models.Task{}, "tasks", "idx_tasks_status", "status"},
	{&models.Task{}, "tasks", "idx_tasks_poster_id", "poster_id"},
	{&models.Task{}, "tasks", "idx_tasks_seeker_id", "seeker_id"},
	{&models.Task{}, "tasks", "idx_tasks_created_at", "created_at"},

	{&models.TaskLocation{}, "task_locations", "idx_task_locations_task_idx", "task_id, idx"},
	{&models.Message{}, "messages", "idx_messages_task_created", "task_id, created_at"},
	{&models.Notification{}, "notifications", "idx_notifications_user_id", "user_id"},
	{&models.Notification{}, "notifications", "idx_notifications_task_id", "task_id"},
}

// AddIndexes creates the secondary indexes that AutoMigrate does not derive from tags.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
