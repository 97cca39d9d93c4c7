package postgres

import (
	"context"

	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultCoursePageSize = 20

// courseRepository implements the domain.CourseRepository interface.
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository is the constructor for courseRepository.
func NewCourseRepository(db *gorm.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

// Find retrieves a filtered, paginated page of courses plus the total matching count.
func (repo *courseRepository) Find(ctx context.Context, filter repository.CourseFilter) ([]*entity.Course, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.CourseModel{}).Where("is_published = ?", true)

	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Grade != 0 {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultCoursePageSize
	}

	var courseModels []model.CourseModel
	if err := query.
		Preload("Instructor").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courseModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	courses := make([]*entity.Course, 0, len(courseModels))
	for i := range courseModels {
		courses = append(courses, courseModels[i].ToEntity())
	}

	return courses, total, nil
}

// FindByID retrieves a single course by its unique ID.
func (repo *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	var courseM model.CourseModel
	if err := repo.db.WithContext(ctx).
		Preload("Instructor").
		First(&courseM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCourseNotFound
		}

		return nil, errors.WithStack(err)
	}

	return courseM.ToEntity(), nil
}

// FindByInstructor retrieves all courses owned by an instructor.
func (repo *courseRepository) FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	var courseModels []model.CourseModel
	if err := repo.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	courses := make([]*entity.Course, 0, len(courseModels))
	for i := range courseModels {
		courses = append(courses, courseModels[i].ToEntity())
	}

	return courses, nil
}

// Create persists a new course.
func (repo *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	courseM := model.CourseModelFromEntity(course)

	if err := repo.db.WithContext(ctx).Create(courseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid instructor reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create course")
	}

	course.ID = courseM.ID
	course.CreatedAt = courseM.CreatedAt
	course.UpdatedAt = courseM.UpdatedAt

	return nil
}

// Update modifies an existing course.
func (repo *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	courseM := model.CourseModelFromEntity(course)

	result := repo.db.WithContext(ctx).Model(&model.CourseModel{}).
		Where("id = ?", course.ID).
		Updates(map[string]any{
			"title":         courseM.Title,
			"description":   courseM.Description,
			"subject":       courseM.Subject,
			"grade":         courseM.Grade,
			"thumbnail_url": courseM.ThumbnailURL,
			"price":         courseM.Price,
			"is_published":  courseM.IsPublished,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update course")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. Lessons cascade at the database level.
func (repo *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CourseModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete course")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourseNotFound
	}

	return nil
}

// lessonRepository implements the domain.LessonRepository interface.
type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository is the constructor for lessonRepository.
func NewLessonRepository(db *gorm.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

// FindByCourseID retrieves all lessons of a course ordered by position.
func (repo *lessonRepository) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error) {
	var lessonModels []model.LessonModel
	if err := repo.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&lessonModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	lessons := make([]*entity.Lesson, 0, len(lessonModels))
	for i := range lessonModels {
		lessons = append(lessons, lessonModels[i].ToEntity())
	}

	return lessons, nil
}

// FindByID retrieves a single lesson by its unique ID.
func (repo *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	var lessonM model.LessonModel
	if err := repo.db.WithContext(ctx).First(&lessonM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLessonNotFound
		}

		return nil, errors.WithStack(err)
	}

	return lessonM.ToEntity(), nil
}

// Create persists a new lesson.
func (repo *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	lessonM := model.LessonModelFromEntity(lesson)

	if err := repo.db.WithContext(ctx).Create(lessonM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid course reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lesson")
	}

	lesson.ID = lessonM.ID
	lesson.CreatedAt = lessonM.CreatedAt
	lesson.UpdatedAt = lessonM.UpdatedAt

	return nil
}

// Update modifies an existing lesson.
func (repo *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	lessonM := model.LessonModelFromEntity(lesson)

	result := repo.db.WithContext(ctx).Model(&model.LessonModel{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]any{
			"title":        lessonM.Title,
			"video_url":    lessonM.VideoURL,
			"document_url": lessonM.DocumentURL,
			"order_index":  lessonM.OrderIndex,
			"duration":     lessonM.Duration,
			"is_published": lessonM.IsPublished,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update lesson")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// Delete removes a lesson.
func (repo *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.LessonModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete lesson")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}
