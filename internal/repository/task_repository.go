package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/taskerrand-api/internal/database"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"gorm.io/gorm"
)

// Preload names accepted by FindByID.
const (
	PreloadLocations = "Locations"
	PreloadSeeker    = "Seeker"
	PreloadPoster    = "Poster"
	PreloadFeedback  = "Feedback"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		if p == PreloadLocations {
			query = query.Preload(p, orderedLocations)
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination, newest first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if q := strings.TrimSpace(filter.TitleQuery); q != "" {
		query = query.Where("LOWER(tasks.title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filter.PosterID != nil {
		query = query.Where("tasks.poster_id = ?", *filter.PosterID)
	}
	if filter.SeekerID != nil {
		query = query.Where("tasks.seeker_id = ?", *filter.SeekerID)
	}
	if filter.ParticipantID != nil {
		query = query.Where("(tasks.poster_id = ? OR tasks.seeker_id = ?)", *filter.ParticipantID, *filter.ParticipantID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("tasks.created_at DESC").
		Order("tasks.id DESC").
		Scopes(database.Paginate(filter.Page)).
		Preload(PreloadLocations, orderedLocations).
		Preload(PreloadSeeker).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateFields updates mutable task columns and optionally replaces the location list
func (r *GormTaskRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]any, locations *[]models.TaskLocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}

		if locations == nil {
			return nil
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskLocation{}).Error; err != nil {
			return err
		}
		if len(*locations) == 0 {
			return nil
		}

		for i := range *locations {
			(*locations)[i].ID = 0
			(*locations)[i].TaskID = id
		}
		return tx.Create(locations).Error
	})
}

// Transition performs a compare-and-swap on the task row.
// The WHERE clause carries the whole precondition so concurrent callers
// cannot both succeed.
func (r *GormTaskRepository) Transition(ctx context.Context, id uint64, guard TransitionGuard, changes map[string]any) error {
	query := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND status = ?", id, guard.From)

	if guard.SeekerID != nil {
		query = query.Where("seeker_id = ?", *guard.SeekerID)
	}
	if guard.RequireProof {
		query = query.Where("proof_image IS NOT NULL AND proof_image <> ''")
	}

	res := query.Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTransitionConflict
	}
	return nil
}

// Delete removes a task and its dependents in one transaction
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []any{
			&models.Notification{},
			&models.TaskReport{},
			&models.Message{},
			&models.Feedback{},
			&models.TaskLocation{},
		}
		for _, model := range dependents {
			if err := tx.Where("task_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountReports counts reports filed against a task
func (r *GormTaskRepository) CountReports(ctx context.Context, taskID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TaskReport{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

func orderedLocations(db *gorm.DB) *gorm.DB {
	return db.Order("task_locations.idx ASC")
}
