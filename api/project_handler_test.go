package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/project-hub-backend/models"
	"github.com/rpupo63/project-hub-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memStore is an in-memory record store serving listings newest-first.
type memStore struct {
	projects []models.Project
}

func (m *memStore) FindAll() ([]models.Project, error) {
	out := make([]models.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *memStore) FindByID(id uuid.UUID) (*models.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			p := m.projects[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) Add(project *models.Project) error {
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	m.projects = append([]models.Project{*project}, m.projects...)
	return nil
}

func (m *memStore) UpdateFields(id uuid.UUID, fields map[string]any) error {
	for i := range m.projects {
		if m.projects[i].ID != id {
			continue
		}
		if status, ok := fields["status"].(string); ok {
			m.projects[i].Status = status
		}
		if title, ok := fields["title"].(string); ok {
			m.projects[i].Title = title
		}
		if members, ok := fields["team_members"].(datatypes.JSONSlice[string]); ok {
			m.projects[i].TeamMembers = members
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) Delete(id uuid.UUID) error {
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestRouter(store *memStore) *chi.Mux {
	handler := newProjectHandler(services.NewProjectService(store))

	r := chi.NewRouter()
	r.Get("/projects", handler.listProjects())
	r.Get("/project/{projectID}", handler.getProject())
	r.Post("/project", handler.createProject())
	r.Put("/project/{projectID}", handler.updateProject())
	r.Delete("/project/{projectID}", handler.deleteProject())
	return r
}

func seedStore() *memStore {
	videoURL := "https://youtu.be/dQw4w9WgXcQ"
	return &memStore{projects: []models.Project{
		{
			ID:          uuid.New(),
			Title:       "Smart Campus",
			Description: "Campus-wide sensor network",
			Semester:    models.SemesterS6,
			Status:      models.StatusTaken,
			TeamMembers: datatypes.JSONSlice[string]{"Ana"},
			Images:      datatypes.JSONSlice[string]{},
			VideoURL:    &videoURL,
		},
		{
			ID:          uuid.New(),
			Title:       "IoT Gate",
			Description: "Automated gate control",
			Semester:    models.SemesterS6,
			Status:      models.StatusIdeaSubmitted,
			TeamMembers: datatypes.JSONSlice[string]{},
			Images:      datatypes.JSONSlice[string]{},
		},
	}}
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListProjects(t *testing.T) {
	router := newTestRouter(seedStore())

	rec := doRequest(t, router, http.MethodGet, "/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var collection ProjectCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
	assert.Equal(t, 2, collection.Total)
	assert.Equal(t, "Smart Campus", collection.Projects[0].Title)
}

func TestListProjectsFiltered(t *testing.T) {
	router := newTestRouter(seedStore())

	t.Run("by team member", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/projects?semester=S6&q=ana&status=All", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var collection ProjectCollection
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
		require.Equal(t, 1, collection.Total)
		assert.Equal(t, "Smart Campus", collection.Projects[0].Title)
	})

	t.Run("by status", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/projects?semester=S6&status=Idea+Submitted", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var collection ProjectCollection
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
		require.Equal(t, 1, collection.Total)
		assert.Equal(t, "IoT Gate", collection.Projects[0].Title)
	})

	t.Run("empty partition", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/projects?semester=S4", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var collection ProjectCollection
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collection))
		assert.Equal(t, 0, collection.Total)
	})
}

func TestGetProject(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store)

	rec := doRequest(t, router, http.MethodGet, "/project/"+store.projects[0].ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail ProjectDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Smart Campus", detail.Project.Title)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", detail.EmbedURL)

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/project/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/project/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateProject(t *testing.T) {
	router := newTestRouter(&memStore{})

	t.Run("missing title", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/project", `{"title":"  ","description":"d","semester":"S6"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		body := `{"title":"Traffic Analyzer","description":"City analytics","semester":"S8","team_members":["Omar"]}`
		rec := doRequest(t, router, http.MethodPost, "/project", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Project
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, models.StatusIdeaSubmitted, created.Status)
		assert.NotNil(t, created.Images, "sequences are never null")
	})
}

func TestUpdateProject(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store)
	target := store.projects[1]

	rec := doRequest(t, router, http.MethodPut, "/project/"+target.ID.String(), `{"status":"Taken"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusTaken, updated.Status)
	assert.Equal(t, target.Title, updated.Title, "unset fields retain prior values")
}

func TestDeleteProjectIdempotent(t *testing.T) {
	store := seedStore()
	router := newTestRouter(store)
	id := store.projects[0].ID.String()

	rec := doRequest(t, router, http.MethodDelete, "/project/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// A second delete of the same id still succeeds
	rec = doRequest(t, router, http.MethodDelete, "/project/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
