// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"eduvn/internal/domain/entity"
	"eduvn/internal/domain/repository"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a guarded operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// CanManage reports whether the actor may modify a resource owned by ownerID.
// Admins may modify anything.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.Role == entity.RoleAdmin || a.ID == ownerID
}

// CourseInput defines the data for creating or updating a course.
type CourseInput struct {
	Title        string
	Description  string
	Subject      string
	Grade        int
	ThumbnailURL string
	Price        int64
	IsPublished  bool
}

// CoursePage is one page of the public catalog.
type CoursePage struct {
	Courses  []*entity.Course `json:"courses"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// CourseUsecase defines the interface for course catalog operations.
type CourseUsecase interface {
	// ListCourses returns a filtered page of published courses.
	ListCourses(ctx context.Context, filter repository.CourseFilter) (*CoursePage, error)

	// GetCourse returns a single course with its lessons.
	GetCourse(ctx context.Context, id uuid.UUID) (*entity.Course, []*entity.Lesson, error)

	// ListInstructorCourses returns every course owned by the instructor,
	// drafts included.
	ListInstructorCourses(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error)

	// CreateCourse creates a course owned by the acting instructor.
	CreateCourse(ctx context.Context, actor Actor, input CourseInput) (*entity.Course, error)

	// UpdateCourse modifies a course owned by the actor (admins may modify any).
	UpdateCourse(ctx context.Context, actor Actor, courseID uuid.UUID, input CourseInput) (*entity.Course, error)

	// DeleteCourse removes a course and its lessons' stored files.
	DeleteCourse(ctx context.Context, actor Actor, courseID uuid.UUID) error
}

// LessonInput defines the data for creating or updating a lesson.
type LessonInput struct {
	Title       string
	VideoURL    string
	DocumentURL string
	OrderIndex  int
	Duration    int
	IsPublished bool
}

// LessonUsecase defines the interface for lesson content operations.
type LessonUsecase interface {
	// ListLessons returns the lessons of a course in order.
	ListLessons(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error)

	// GetLesson returns a single lesson.
	GetLesson(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)

	// CreateLesson adds a lesson to a course owned by the actor.
	CreateLesson(ctx context.Context, actor Actor, courseID uuid.UUID, input LessonInput) (*entity.Lesson, error)

	// UpdateLesson modifies a lesson within a course owned by the actor.
	UpdateLesson(ctx context.Context, actor Actor, lessonID uuid.UUID, input LessonInput) (*entity.Lesson, error)

	// DeleteLesson removes a lesson from a course owned by the actor.
	DeleteLesson(ctx context.Context, actor Actor, lessonID uuid.UUID) error
}
