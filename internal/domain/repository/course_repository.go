// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"eduvn/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for course and lesson persistence.
var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLessonNotFound is returned when a lesson is not found.
	ErrLessonNotFound = errors.New("lesson not found")
)

// CourseFilter narrows the public catalog listing.
// Zero values mean "no constraint".
type CourseFilter struct {
	Search   string // Matched against title, case-insensitive substring.
	Subject  string
	Grade    int
	MinPrice int64
	MaxPrice int64 // Zero means unbounded.
	Page     int   // 1-based.
	PageSize int
}

// CourseRepository defines the standard operations for course persistence.
type CourseRepository interface {
	// Find retrieves a filtered, paginated page of courses plus the total
	// matching count.
	Find(ctx context.Context, filter CourseFilter) ([]*entity.Course, int64, error)

	// FindByID retrieves a single course by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)

	// FindByInstructor retrieves all courses owned by an instructor.
	FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error)

	// Create persists a new course.
	Create(ctx context.Context, course *entity.Course) error

	// Update modifies an existing course.
	Update(ctx context.Context, course *entity.Course) error

	// Delete removes a course. Lessons cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LessonRepository defines the standard operations for lesson persistence.
type LessonRepository interface {
	// FindByCourseID retrieves all lessons of a course ordered by OrderIndex.
	FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error)

	// FindByID retrieves a single lesson by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)

	// Create persists a new lesson.
	Create(ctx context.Context, lesson *entity.Lesson) error

	// Update modifies an existing lesson.
	Update(ctx context.Context, lesson *entity.Lesson) error

	// Delete removes a lesson.
	Delete(ctx context.Context, id uuid.UUID) error
}
