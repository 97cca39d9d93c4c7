// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a published or draft course owned by an instructor.
type Course struct {
	ID           uuid.UUID `json:"id"`           // The unique identifier for the course.
	InstructorID uuid.UUID `json:"instructorId"` // The owning instructor's user id.
	Title        string    `json:"title"`        // Course title shown in the catalog.
	Description  string    `json:"description"`  // Free-form course description.
	Subject      string    `json:"subject"`      // Subject label, e.g. "Math", "Physics".
	Grade        int       `json:"grade"`        // Target school grade (10, 11, 12).
	ThumbnailURL string    `json:"thumbnailUrl"` // URL of the catalog thumbnail image, empty if none.
	Price        int64     `json:"price"`        // Price in the smallest currency unit. Zero means free.
	IsPublished  bool      `json:"isPublished"`  // Draft courses are hidden from the public catalog.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	InstructorName string `json:"instructorName"` // Denormalized display name of the instructor, filled on reads.
}

// Lesson represents a single unit of content inside a course.
type Lesson struct {
	ID          uuid.UUID `json:"id"`          // The unique identifier for the lesson.
	CourseID    uuid.UUID `json:"courseId"`    // The owning course's id.
	Title       string    `json:"title"`       // Lesson title.
	VideoURL    string    `json:"videoUrl"`    // URL of the lesson video, empty if none.
	DocumentURL string    `json:"documentUrl"` // URL of the lesson document, empty if none.
	OrderIndex  int       `json:"orderIndex"`  // Position of the lesson within the course.
	Duration    int       `json:"duration"`    // Length in minutes.
	IsPublished bool      `json:"isPublished"` // Unpublished lessons are hidden from students.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
