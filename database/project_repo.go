package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/project-hub-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns every project ordered by creation time, newest first.
func (r *ProjectRepo) FindAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database. The database assigns id
// and timestamps.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// UpdateFields applies a partial update to the project with the given id.
// Columns absent from fields keep their prior values. Returns
// gorm.ErrRecordNotFound when no row matches.
func (r *ProjectRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project from the database by id. Deleting an id that is
// already absent is not an error.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
