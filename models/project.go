package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Semester values shown as browsing tabs.
const (
	SemesterS4 = "S4"
	SemesterS6 = "S6"
	SemesterS8 = "S8"
)

// Project statuses driving the listing badge.
const (
	StatusIdeaSubmitted = "Idea Submitted"
	StatusTaken         = "Taken"
)

// Project represents a student project record
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Semester     string                      `json:"semester" db:"semester" gorm:"type:text;not null"`
	Category     *string                     `json:"category,omitempty" db:"category" gorm:"type:text"`
	Status       string                      `json:"status" db:"status" gorm:"type:text;not null;default:'Idea Submitted'"`
	TeamMembers  datatypes.JSONSlice[string] `json:"team_members" db:"team_members" gorm:"not null"`
	PdfURL       *string                     `json:"pdf_url,omitempty" db:"pdf_url" gorm:"type:text"`
	Images       datatypes.JSONSlice[string] `json:"images" db:"images" gorm:"not null"`
	VideoURL     *string                     `json:"video_url,omitempty" db:"video_url" gorm:"type:text"`
	ExternalLink *string                     `json:"external_link,omitempty" db:"external_link" gorm:"type:text"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at" db:"updated_at"`
}
