// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"eduvn/internal/domain/entity"
	"eduvn/internal/domain/service"

	"github.com/google/uuid"
)

// CheckoutOutput returns the provider's hosted checkout URL, or the
// enrollment when the course was free and no payment round-trip happened.
type CheckoutOutput struct {
	CheckoutURL string
	OrderCode   int64
	Enrollment  *entity.Enrollment
}

// PaymentUsecase defines the interface for purchase and enrollment operations.
type PaymentUsecase interface {
	// Checkout starts a purchase: free courses enroll immediately, paid
	// courses get a pending order plus a hosted checkout link.
	Checkout(ctx context.Context, studentID, courseID uuid.UUID) (*CheckoutOutput, error)

	// HandleWebhook processes the provider's payment-result callback.
	// A verified successful payment marks the order paid and enrolls the
	// student; replays are idempotent.
	HandleWebhook(ctx context.Context, webhook *service.PaymentWebhook) error

	// IsEnrolled reports whether the student has access to the course.
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
}
