package services

import (
	"strings"

	"github.com/rpupo63/project-hub-backend/models"
)

// StatusAll is the sentinel status filter value matching every status.
const StatusAll = "All"

// Filter narrows projects to the selected semester, then to records
// matching the free-text query, then to the selected status. Matching is
// a locale-naive case-insensitive substring test over the title,
// description, and each team member; the query is not trimmed. An empty
// query matches everything, as does an empty or "All" status. Input
// ordering is preserved; an empty result is a valid output.
func Filter(projects []models.Project, semester, query, status string) []models.Project {
	q := strings.ToLower(query)
	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Semester != semester {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if status != "" && status != StatusAll && p.Status != status {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesQuery(p models.Project, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(p.Title), loweredQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), loweredQuery) {
		return true
	}
	for _, member := range p.TeamMembers {
		if strings.Contains(strings.ToLower(member), loweredQuery) {
			return true
		}
	}
	return false
}
