// Package repository provides test doubles for the domain repository interfaces.
package repository

import (
	"context"

	"eduvn/internal/domain/entity"
	"eduvn/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a testify mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// RefreshTokenRepository is a testify mock for repository.RefreshTokenRepository.
type RefreshTokenRepository struct {
	mock.Mock
}

func (m *RefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *RefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *RefreshTokenRepository) Revoke(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

// CourseRepository is a testify mock for repository.CourseRepository.
type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) Find(ctx context.Context, filter repository.CourseFilter) ([]*entity.Course, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Course), args.Get(1).(int64), args.Error(2)
}

func (m *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Course), args.Error(1)
}

func (m *CourseRepository) FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	args := m.Called(ctx, instructorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Course), args.Error(1)
}

func (m *CourseRepository) Create(ctx context.Context, course *entity.Course) error {
	args := m.Called(ctx, course)

	return args.Error(0)
}

func (m *CourseRepository) Update(ctx context.Context, course *entity.Course) error {
	args := m.Called(ctx, course)

	return args.Error(0)
}

func (m *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// LessonRepository is a testify mock for repository.LessonRepository.
type LessonRepository struct {
	mock.Mock
}

func (m *LessonRepository) FindByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Lesson, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Lesson), args.Error(1)
}

func (m *LessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Lesson), args.Error(1)
}

func (m *LessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	args := m.Called(ctx, lesson)

	return args.Error(0)
}

func (m *LessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	args := m.Called(ctx, lesson)

	return args.Error(0)
}

func (m *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// OrderRepository is a testify mock for repository.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) FindByOrderCode(ctx context.Context, orderCode int64) (*entity.Order, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

// EnrollmentRepository is a testify mock for repository.EnrollmentRepository.
type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, studentID, courseID)

	return args.Bool(0), args.Error(1)
}

func (m *EnrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	args := m.Called(ctx, enrollment)

	return args.Error(0)
}

// TransactionManager is a test double for repository.TransactionManager that
// executes the callback immediately against a RepositoryFactory stub.
type TransactionManager struct {
	Factory repository.RepositoryFactory
	// Err, when set, is returned without invoking the callback.
	Err error
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}

// RepositoryFactory is a test double handing out the configured mocks.
type RepositoryFactory struct {
	Users       *UserRepository
	Tokens      *RefreshTokenRepository
	Courses     *CourseRepository
	Lessons     *LessonRepository
	Orders      *OrderRepository
	Enrollments *EnrollmentRepository
}

func (f *RepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *RepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return f.Tokens }

func (f *RepositoryFactory) CourseRepo() repository.CourseRepository { return f.Courses }

func (f *RepositoryFactory) LessonRepo() repository.LessonRepository { return f.Lessons }

func (f *RepositoryFactory) OrderRepo() repository.OrderRepository { return f.Orders }

func (f *RepositoryFactory) EnrollmentRepo() repository.EnrollmentRepository { return f.Enrollments }
