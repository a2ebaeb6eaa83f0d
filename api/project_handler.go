package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/project-hub-backend/errs"
	"github.com/rpupo63/project-hub-backend/models"
	"github.com/rpupo63/project-hub-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
}

func newProjectHandler(projects *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// ProjectCollection represents a list of projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// ProjectDetail represents a single project plus its derived embed URL
type ProjectDetail struct {
	Project  models.Project `json:"project"`
	EmbedURL string         `json:"embed_url,omitempty"`
}

// createProjectRequest is a draft payload; id and timestamps are assigned
// by the store.
type createProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Semester     string   `json:"semester"`
	Category     *string  `json:"category"`
	Status       string   `json:"status"`
	TeamMembers  []string `json:"team_members"`
	PdfURL       *string  `json:"pdf_url"`
	Images       []string `json:"images"`
	VideoURL     *string  `json:"video_url"`
	ExternalLink *string  `json:"external_link"`
}

// updateProjectRequest is a partial update; absent fields retain their
// prior values.
type updateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Semester     *string   `json:"semester"`
	Category     *string   `json:"category"`
	Status       *string   `json:"status"`
	TeamMembers  *[]string `json:"team_members"`
	PdfURL       *string   `json:"pdf_url"`
	Images       *[]string `json:"images"`
	VideoURL     *string   `json:"video_url"`
	ExternalLink *string   `json:"external_link"`
}

// listProjects retrieves the catalog, optionally filtered
// @Summary List projects
// @Description Retrieves all projects ordered by creation time descending. When a semester is given, the list is narrowed server-side by semester, free-text query, and status.
// @Tags Projects
// @Accept json
// @Produce json
// @Param semester query string false "Semester partition (S4, S6, S8)"
// @Param q query string false "Free-text query matched against title, description, and team members"
// @Param status query string false "Status filter; 'All' or empty matches every status"
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 503 {object} map[string]interface{} "Service Unavailable - listing could not be fetched"
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		if semester := query.Get("semester"); semester != "" {
			projects = services.Filter(projects, semester, query.Get("q"), query.Get("status"))
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves a single project; the response includes the playable embed URL derived from the stored video URL.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectDetail "Project details"
// @Failure 400 {object} map[string]interface{} "Bad Request - Invalid projectID"
// @Failure 404 {object} map[string]interface{} "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Get(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		detail := ProjectDetail{Project: *project}
		if project.VideoURL != nil {
			detail.EmbedURL = services.EmbedURL(*project.VideoURL)
		}

		h.responder.WriteJSON(w, detail)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project record. Title and description are required after trimming; team member and image lists default to empty.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project draft"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} map[string]interface{} "Bad Request - Invalid project data"
// @Failure 500 {object} map[string]interface{} "Internal Server Error - Error creating project"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.projects.Create(services.ProjectDraft{
			Title:        req.Title,
			Description:  req.Description,
			Semester:     req.Semester,
			Category:     req.Category,
			Status:       req.Status,
			TeamMembers:  req.TeamMembers,
			PdfURL:       req.PdfURL,
			Images:       req.Images,
			VideoURL:     req.VideoURL,
			ExternalLink: req.ExternalLink,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Description Applies a partial update to an existing project; absent fields keep their prior values.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body updateProjectRequest true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} map[string]interface{} "Bad Request - Invalid project data"
// @Failure 404 {object} map[string]interface{} "Not Found - Project not found"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.projects.Update(projectID, services.ProjectPatch{
			Title:        req.Title,
			Description:  req.Description,
			Semester:     req.Semester,
			Category:     req.Category,
			Status:       req.Status,
			TeamMembers:  req.TeamMembers,
			PdfURL:       req.PdfURL,
			Images:       req.Images,
			VideoURL:     req.VideoURL,
			ExternalLink: req.ExternalLink,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project permanently. Deleting an id that is already absent succeeds.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} map[string]interface{} "Bad Request - Invalid projectID"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
