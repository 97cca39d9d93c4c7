// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"eduvn/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for order and enrollment persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByOrderCode retrieves an order by the numeric code shared with the
	// checkout provider.
	FindByOrderCode(ctx context.Context, orderCode int64) (*entity.Order, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// Update modifies an existing order.
	Update(ctx context.Context, order *entity.Order) error
}

// EnrollmentRepository defines the standard operations for enrollment persistence.
type EnrollmentRepository interface {
	// Exists reports whether the student is already enrolled in the course.
	Exists(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)

	// Create persists a new enrollment. Enrolling twice is a no-op at the
	// database level (unique student+course constraint).
	Create(ctx context.Context, enrollment *entity.Enrollment) error
}
