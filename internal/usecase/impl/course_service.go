// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "eduvn/internal/delivery/context"
	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/domain/service"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// courseService implements the CourseUsecase interface.
type courseService struct {
	courseRepo  repository.CourseRepository
	lessonRepo  repository.LessonRepository
	fileStorage service.FileStorage
	logger      *slog.Logger
}

// NewCourseService is the constructor for courseService.
func NewCourseService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	fileStorage service.FileStorage,
	logger *slog.Logger,
) usecase.CourseUsecase {
	return &courseService{
		courseRepo:  courseRepo,
		lessonRepo:  lessonRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (srv *courseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCourses returns a filtered page of published courses.
func (srv *courseService) ListCourses(ctx context.Context, filter repository.CourseFilter) (*usecase.CoursePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	courses, total, err := srv.courseRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list courses")
	}

	return &usecase.CoursePage{
		Courses:  courses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetCourse returns a single course with its lessons.
func (srv *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*entity.Course, []*entity.Lesson, error) {
	course, err := srv.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, nil, domainerrors.ErrCourseNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find course")
	}

	lessons, err := srv.lessonRepo.FindByCourseID(ctx, id)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list lessons")
	}

	return course, lessons, nil
}

// ListInstructorCourses returns every course owned by the instructor, drafts included.
func (srv *courseService) ListInstructorCourses(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	courses, err := srv.courseRepo.FindByInstructor(ctx, instructorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list instructor courses")
	}

	return courses, nil
}

// CreateCourse creates a course owned by the acting instructor.
func (srv *courseService) CreateCourse(ctx context.Context, actor usecase.Actor, input usecase.CourseInput) (*entity.Course, error) {
	course := &entity.Course{
		InstructorID: actor.ID,
		Title:        input.Title,
		Description:  input.Description,
		Subject:      input.Subject,
		Grade:        input.Grade,
		ThumbnailURL: input.ThumbnailURL,
		Price:        input.Price,
		IsPublished:  input.IsPublished,
	}

	if err := srv.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Course created",
		slog.Any("courseID", course.ID),
		slog.Any("instructorID", actor.ID))

	return course, nil
}

// UpdateCourse modifies a course owned by the actor. Admins may modify any course.
func (srv *courseService) UpdateCourse(ctx context.Context, actor usecase.Actor, courseID uuid.UUID, input usecase.CourseInput) (*entity.Course, error) {
	course, err := srv.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Subject = input.Subject
	course.Grade = input.Grade
	course.ThumbnailURL = input.ThumbnailURL
	course.Price = input.Price
	course.IsPublished = input.IsPublished

	if err := srv.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course together with its lessons' stored files.
func (srv *courseService) DeleteCourse(ctx context.Context, actor usecase.Actor, courseID uuid.UUID) error {
	course, err := srv.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}

	lessons, err := srv.lessonRepo.FindByCourseID(ctx, courseID)
	if err != nil {
		return errors.Wrap(err, "failed to list lessons")
	}

	if err := srv.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	// Stored files are cleaned up after the database delete commits;
	// a failed cleanup leaves only orphaned blobs, never dangling rows.
	srv.cleanupFiles(ctx, course, lessons)

	srv.log(ctx).Info("Course deleted", slog.Any("courseID", courseID))

	return nil
}

// ownedCourse loads the course and checks the actor's right to manage it.
func (srv *courseService) ownedCourse(ctx context.Context, actor usecase.Actor, courseID uuid.UUID) (*entity.Course, error) {
	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, domainerrors.ErrCourseNotFound
		}

		return nil, errors.Wrap(err, "failed to find course")
	}

	if !actor.CanManage(course.InstructorID) {
		return nil, domainerrors.ErrForbidden
	}

	return course, nil
}

func (srv *courseService) cleanupFiles(ctx context.Context, course *entity.Course, lessons []*entity.Lesson) {
	urls := make([]string, 0, 2*len(lessons)+1)
	if course.ThumbnailURL != "" {
		urls = append(urls, course.ThumbnailURL)
	}
	for _, lesson := range lessons {
		if lesson.VideoURL != "" {
			urls = append(urls, lesson.VideoURL)
		}
		if lesson.DocumentURL != "" {
			urls = append(urls, lesson.DocumentURL)
		}
	}

	for _, url := range urls {
		if err := srv.fileStorage.DeleteByURL(ctx, url); err != nil {
			srv.log(ctx).Warn("Failed to delete stored file",
				slog.String("url", url),
				slog.Any("error", err))
		}
	}
}
