// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "eduvn/internal/delivery/context"
	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// lessonService implements the LessonUsecase interface.
type lessonService struct {
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
	logger     *slog.Logger
}

// NewLessonService is the constructor for lessonService.
func NewLessonService(
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
	logger *slog.Logger,
) usecase.LessonUsecase {
	return &lessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

func (srv *lessonService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListLessons returns the lessons of a course in order.
func (srv *lessonService) ListLessons(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error) {
	if _, err := srv.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, domainerrors.ErrCourseNotFound
		}

		return nil, errors.Wrap(err, "failed to find course")
	}

	lessons, err := srv.lessonRepo.FindByCourseID(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list lessons")
	}

	return lessons, nil
}

// GetLesson returns a single lesson.
func (srv *lessonService) GetLesson(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	lesson, err := srv.lessonRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, domainerrors.ErrLessonNotFound
		}

		return nil, errors.Wrap(err, "failed to find lesson")
	}

	return lesson, nil
}

// CreateLesson adds a lesson to a course owned by the actor.
func (srv *lessonService) CreateLesson(ctx context.Context, actor usecase.Actor, courseID uuid.UUID, input usecase.LessonInput) (*entity.Lesson, error) {
	if err := srv.checkCourseOwnership(ctx, actor, courseID); err != nil {
		return nil, err
	}

	lesson := &entity.Lesson{
		CourseID:    courseID,
		Title:       input.Title,
		VideoURL:    input.VideoURL,
		DocumentURL: input.DocumentURL,
		OrderIndex:  input.OrderIndex,
		Duration:    input.Duration,
		IsPublished: input.IsPublished,
	}

	if err := srv.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Lesson created",
		slog.Any("lessonID", lesson.ID),
		slog.Any("courseID", courseID))

	return lesson, nil
}

// UpdateLesson modifies a lesson within a course owned by the actor.
func (srv *lessonService) UpdateLesson(ctx context.Context, actor usecase.Actor, lessonID uuid.UUID, input usecase.LessonInput) (*entity.Lesson, error) {
	lesson, err := srv.ownedLesson(ctx, actor, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Title = input.Title
	lesson.VideoURL = input.VideoURL
	lesson.DocumentURL = input.DocumentURL
	lesson.OrderIndex = input.OrderIndex
	lesson.Duration = input.Duration
	lesson.IsPublished = input.IsPublished

	if err := srv.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// DeleteLesson removes a lesson from a course owned by the actor.
func (srv *lessonService) DeleteLesson(ctx context.Context, actor usecase.Actor, lessonID uuid.UUID) error {
	if _, err := srv.ownedLesson(ctx, actor, lessonID); err != nil {
		return err
	}

	if err := srv.lessonRepo.Delete(ctx, lessonID); err != nil {
		return err
	}

	srv.log(ctx).Info("Lesson deleted", slog.Any("lessonID", lessonID))

	return nil
}

// ownedLesson loads the lesson and checks the actor against the owning course.
func (srv *lessonService) ownedLesson(ctx context.Context, actor usecase.Actor, lessonID uuid.UUID) (*entity.Lesson, error) {
	lesson, err := srv.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, domainerrors.ErrLessonNotFound
		}

		return nil, errors.Wrap(err, "failed to find lesson")
	}

	if err := srv.checkCourseOwnership(ctx, actor, lesson.CourseID); err != nil {
		return nil, err
	}

	return lesson, nil
}

func (srv *lessonService) checkCourseOwnership(ctx context.Context, actor usecase.Actor, courseID uuid.UUID) error {
	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return domainerrors.ErrCourseNotFound
		}

		return errors.Wrap(err, "failed to find course")
	}

	if !actor.CanManage(course.InstructorID) {
		return domainerrors.ErrForbidden
	}

	return nil
}
