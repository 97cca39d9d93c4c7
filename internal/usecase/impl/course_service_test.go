package impl

import (
	"context"
	"log/slog"
	"testing"

	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	mockrepo "eduvn/internal/mocks/repository"
	mocksvc "eduvn/internal/mocks/service"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	courses *mockrepo.CourseRepository
	lessons *mockrepo.LessonRepository
	storage *mocksvc.FileStorage
	service usecase.CourseUsecase
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		courses: new(mockrepo.CourseRepository),
		lessons: new(mockrepo.LessonRepository),
		storage: new(mocksvc.FileStorage),
	}
	f.service = NewCourseService(f.courses, f.lessons, f.storage, slog.Default())

	return f
}

func sampleCourse(instructorID uuid.UUID) *entity.Course {
	return &entity.Course{
		ID:           uuid.New(),
		InstructorID: instructorID,
		Title:        "Calculus for Grade 12",
		Subject:      "Math",
		Grade:        12,
		Price:        499000,
		IsPublished:  true,
	}
}

func TestListCourses_NormalizesPagination(t *testing.T) {
	f := newCourseFixture()

	f.courses.On("Find", mock.Anything, mock.MatchedBy(func(filter repository.CourseFilter) bool {
		return filter.Page == 1 && filter.PageSize == 20
	})).Return([]*entity.Course{}, int64(0), nil)

	page, err := f.service.ListCourses(context.Background(), repository.CourseFilter{Page: -3, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestGetCourse_WithLessons(t *testing.T) {
	f := newCourseFixture()
	course := sampleCourse(uuid.New())
	lessons := []*entity.Lesson{{ID: uuid.New(), CourseID: course.ID, Title: "Limits"}}

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)
	f.lessons.On("FindByCourseID", mock.Anything, course.ID).Return(lessons, nil)

	got, gotLessons, err := f.service.GetCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, got.ID)
	assert.Len(t, gotLessons, 1)
}

func TestGetCourse_NotFound(t *testing.T) {
	f := newCourseFixture()

	f.courses.On("FindByID", mock.Anything, mock.Anything).
		Return(nil, repository.ErrCourseNotFound)

	_, _, err := f.service.GetCourse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrCourseNotFound)
}

func TestUpdateCourse_OwnershipEnforced(t *testing.T) {
	f := newCourseFixture()
	owner := uuid.New()
	course := sampleCourse(owner)

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)

	stranger := usecase.Actor{ID: uuid.New(), Role: entity.RoleInstructor}
	_, err := f.service.UpdateCourse(context.Background(), stranger, course.ID, usecase.CourseInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	f.courses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCourse_AdminBypassesOwnership(t *testing.T) {
	f := newCourseFixture()
	course := sampleCourse(uuid.New())

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)
	f.courses.On("Update", mock.Anything, mock.Anything).Return(nil)

	admin := usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	updated, err := f.service.UpdateCourse(context.Background(), admin, course.ID, usecase.CourseInput{
		Title: "Renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteCourse_CleansUpStoredFiles(t *testing.T) {
	f := newCourseFixture()
	owner := uuid.New()
	course := sampleCourse(owner)
	course.ThumbnailURL = "https://cdn.example.com/uploads/thumbnails/a.png"
	lessons := []*entity.Lesson{
		{ID: uuid.New(), CourseID: course.ID, VideoURL: "https://cdn.example.com/uploads/lessons/v.mp4"},
	}

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)
	f.lessons.On("FindByCourseID", mock.Anything, course.ID).Return(lessons, nil)
	f.courses.On("Delete", mock.Anything, course.ID).Return(nil)
	f.storage.On("DeleteByURL", mock.Anything, course.ThumbnailURL).Return(nil)
	f.storage.On("DeleteByURL", mock.Anything, lessons[0].VideoURL).Return(nil)

	actor := usecase.Actor{ID: owner, Role: entity.RoleInstructor}
	require.NoError(t, f.service.DeleteCourse(context.Background(), actor, course.ID))
	f.storage.AssertNumberOfCalls(t, "DeleteByURL", 2)
}

func TestCreateLesson_OwnershipEnforced(t *testing.T) {
	f := newCourseFixture()
	lessonSvc := NewLessonService(f.lessons, f.courses, slog.Default())
	course := sampleCourse(uuid.New())

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)

	stranger := usecase.Actor{ID: uuid.New(), Role: entity.RoleInstructor}
	_, err := lessonSvc.CreateLesson(context.Background(), stranger, course.ID, usecase.LessonInput{Title: "Intro"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCreateLesson_Success(t *testing.T) {
	f := newCourseFixture()
	lessonSvc := NewLessonService(f.lessons, f.courses, slog.Default())
	owner := uuid.New()
	course := sampleCourse(owner)

	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)
	f.lessons.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lesson) bool {
		return l.CourseID == course.ID && l.Title == "Intro"
	})).Return(nil)

	actor := usecase.Actor{ID: owner, Role: entity.RoleInstructor}
	lesson, err := lessonSvc.CreateLesson(context.Background(), actor, course.ID, usecase.LessonInput{Title: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, course.ID, lesson.CourseID)
}

func TestDeleteLesson_ChecksOwningCourse(t *testing.T) {
	f := newCourseFixture()
	lessonSvc := NewLessonService(f.lessons, f.courses, slog.Default())
	owner := uuid.New()
	course := sampleCourse(owner)
	lesson := &entity.Lesson{ID: uuid.New(), CourseID: course.ID}

	f.lessons.On("FindByID", mock.Anything, lesson.ID).Return(lesson, nil)
	f.courses.On("FindByID", mock.Anything, course.ID).Return(course, nil)
	f.lessons.On("Delete", mock.Anything, lesson.ID).Return(nil)

	actor := usecase.Actor{ID: owner, Role: entity.RoleInstructor}
	assert.NoError(t, lessonSvc.DeleteLesson(context.Background(), actor, lesson.ID))
}
