package model

import (
	"time"

	"github.com/google/uuid"

	"eduvn/internal/domain/entity"
)

// CourseModel mirrors the 'courses' table.
type CourseModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Subject      string    `gorm:"type:varchar(100);index"`
	Grade        int       `gorm:"index"`
	ThumbnailURL string    `gorm:"type:varchar(500)"`
	Price        int64     `gorm:"not null;default:0"`
	IsPublished  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Instructor *UserModel    `gorm:"foreignKey:InstructorID"`
	Lessons    []LessonModel `gorm:"foreignKey:CourseID"`
}

// TableName explicitly sets the table name for GORM.
func (CourseModel) TableName() string {
	return "courses"
}

// ToEntity converts the persistence model into the domain entity.
// The instructor's display name is carried along when the association is loaded.
func (m *CourseModel) ToEntity() *entity.Course {
	course := &entity.Course{
		ID:           m.ID,
		InstructorID: m.InstructorID,
		Title:        m.Title,
		Description:  m.Description,
		Subject:      m.Subject,
		Grade:        m.Grade,
		ThumbnailURL: m.ThumbnailURL,
		Price:        m.Price,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Instructor != nil {
		course.InstructorName = m.Instructor.FullName
	}

	return course
}

// CourseModelFromEntity converts a domain entity into the persistence model.
func CourseModelFromEntity(course *entity.Course) *CourseModel {
	return &CourseModel{
		ID:           course.ID,
		InstructorID: course.InstructorID,
		Title:        course.Title,
		Description:  course.Description,
		Subject:      course.Subject,
		Grade:        course.Grade,
		ThumbnailURL: course.ThumbnailURL,
		Price:        course.Price,
		IsPublished:  course.IsPublished,
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
	}
}

// LessonModel mirrors the 'lessons' table.
type LessonModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	VideoURL    string    `gorm:"type:varchar(500)"`
	DocumentURL string    `gorm:"type:varchar(500)"`
	OrderIndex  int       `gorm:"not null;default:0"`
	Duration    int       `gorm:"not null;default:0"`
	IsPublished bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (LessonModel) TableName() string {
	return "lessons"
}

// ToEntity converts the persistence model into the domain entity.
func (m *LessonModel) ToEntity() *entity.Lesson {
	return &entity.Lesson{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		VideoURL:    m.VideoURL,
		DocumentURL: m.DocumentURL,
		OrderIndex:  m.OrderIndex,
		Duration:    m.Duration,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// LessonModelFromEntity converts a domain entity into the persistence model.
func LessonModelFromEntity(lesson *entity.Lesson) *LessonModel {
	return &LessonModel{
		ID:          lesson.ID,
		CourseID:    lesson.CourseID,
		Title:       lesson.Title,
		VideoURL:    lesson.VideoURL,
		DocumentURL: lesson.DocumentURL,
		OrderIndex:  lesson.OrderIndex,
		Duration:    lesson.Duration,
		IsPublished: lesson.IsPublished,
		CreatedAt:   lesson.CreatedAt,
		UpdatedAt:   lesson.UpdatedAt,
	}
}
