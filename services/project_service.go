package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/rpupo63/project-hub-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectStore is the record-store surface the service depends on.
// *database.ProjectRepo satisfies it.
type ProjectStore interface {
	FindAll() ([]models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	Delete(id uuid.UUID) error
}

// ProjectService exposes the catalog operations over the record store,
// keeping one cached snapshot of the full listing. Every successful
// mutation invalidates the snapshot so the next read refetches.
type ProjectService struct {
	store  ProjectStore
	cache  *listCache
	logger zerolog.Logger
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{
		store:  store,
		cache:  newListCache(),
		logger: log.With().Str("serviceName", "projectService").Logger(),
	}
}

// ProjectDraft is a project payload prior to server-assigned id and
// timestamps.
type ProjectDraft struct {
	Title        string
	Description  string
	Semester     string
	Category     *string
	Status       string
	TeamMembers  []string
	PdfURL       *string
	Images       []string
	VideoURL     *string
	ExternalLink *string
}

// ProjectPatch carries a partial update; nil fields retain their prior
// values.
type ProjectPatch struct {
	Title        *string
	Description  *string
	Semester     *string
	Category     *string
	Status       *string
	TeamMembers  *[]string
	PdfURL       *string
	Images       *[]string
	VideoURL     *string
	ExternalLink *string
}

// List returns all projects ordered by creation time descending. A store
// failure surfaces as a fetch error, distinct from an empty catalog.
// Concurrent callers hitting a cold cache share one fetch.
func (s *ProjectService) List() ([]models.Project, error) {
	projects, err := s.cache.Get(s.store.FindAll)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch project list")
		return nil, errs.NewFetchError("projects", err)
	}
	return projects, nil
}

// Get returns a single project by id.
func (s *ProjectService) Get(id uuid.UUID) (*models.Project, error) {
	project, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("project")
		}
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return project, nil
}

// Create validates and inserts a new project, then invalidates the cached
// listing. Validation runs before any store call.
func (s *ProjectService) Create(draft ProjectDraft) (*models.Project, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	description := strings.TrimSpace(draft.Description)
	if description == "" {
		return nil, errs.NewMissingRequiredFieldError("description")
	}

	status := draft.Status
	if status == "" {
		status = models.StatusIdeaSubmitted
	}

	project := models.Project{
		Title:        title,
		Description:  description,
		Semester:     draft.Semester,
		Category:     draft.Category,
		Status:       status,
		TeamMembers:  nonNil(draft.TeamMembers),
		PdfURL:       draft.PdfURL,
		Images:       nonNil(draft.Images),
		VideoURL:     draft.VideoURL,
		ExternalLink: draft.ExternalLink,
	}

	if err := s.store.Add(&project); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("failed to create project")
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	s.cache.Invalidate()
	return &project, nil
}

// Update applies a partial update and invalidates the cached listing on
// success. Updating an unknown id is an error.
func (s *ProjectService) Update(id uuid.UUID, patch ProjectPatch) (*models.Project, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.Get(id)
	}

	if err := s.store.UpdateFields(id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("project")
		}
		s.logger.Error().Err(err).Str("projectID", id.String()).Msg("failed to update project")
		return nil, errs.NewDatabaseError("update", "project", err)
	}

	s.cache.Invalidate()

	updated, err := s.store.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find updated", "project", err)
	}
	return updated, nil
}

// Delete removes a project and invalidates the cached listing. Deleting
// an id that is already absent succeeds.
func (s *ProjectService) Delete(id uuid.UUID) error {
	if err := s.store.Delete(id); err != nil {
		s.logger.Error().Err(err).Str("projectID", id.String()).Msg("failed to delete project")
		return errs.NewDatabaseError("delete", "project", err)
	}
	s.cache.Invalidate()
	return nil
}

// SubscribeListRefresh signals each time the cached listing is refreshed.
func (s *ProjectService) SubscribeListRefresh() <-chan struct{} {
	return s.cache.Subscribe()
}

func (p ProjectPatch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, errs.NewMissingRequiredFieldError("title")
		}
		fields["title"] = title
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		if description == "" {
			return nil, errs.NewMissingRequiredFieldError("description")
		}
		fields["description"] = description
	}
	if p.Semester != nil {
		fields["semester"] = *p.Semester
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.TeamMembers != nil {
		fields["team_members"] = datatypes.JSONSlice[string](nonNil(*p.TeamMembers))
	}
	if p.PdfURL != nil {
		fields["pdf_url"] = *p.PdfURL
	}
	if p.Images != nil {
		fields["images"] = datatypes.JSONSlice[string](nonNil(*p.Images))
	}
	if p.VideoURL != nil {
		fields["video_url"] = *p.VideoURL
	}
	if p.ExternalLink != nil {
		fields["external_link"] = *p.ExternalLink
	}
	return fields, nil
}

// nonNil keeps sequence columns empty-but-present, never null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
