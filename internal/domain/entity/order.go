// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the payment state of an order.
type OrderStatus string

const (
	// OrderPending indicates a created order awaiting payment.
	OrderPending OrderStatus = "Pending"
	// OrderPaid indicates the checkout provider confirmed payment.
	OrderPaid OrderStatus = "Paid"
	// OrderFailed indicates the provider reported a failed payment.
	OrderFailed OrderStatus = "Failed"
	// OrderCancelled indicates the buyer abandoned the checkout.
	OrderCancelled OrderStatus = "Cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderFailed, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order represents a student's purchase attempt for a course.
// OrderCode is the numeric identifier shared with the checkout provider;
// the provider echoes it back in webhook payloads.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	OrderCode int64       `json:"orderCode"` // Unique numeric code (max 15 digits) used by the checkout provider.
	StudentID uuid.UUID   `json:"studentId"`
	CourseID  uuid.UUID   `json:"courseId"`
	Amount    int64       `json:"amount"` // Charged amount in the smallest currency unit.
	Status    OrderStatus `json:"status"`
	PaidAt    *time.Time  `json:"paidAt,omitempty"` // Set when the webhook confirms payment.
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Enrollment grants a student access to a course's content.
type Enrollment struct {
	ID         uuid.UUID      `json:"id"`
	StudentID  uuid.UUID      `json:"studentId"`
	CourseID   uuid.UUID      `json:"courseId"`
	Type       EnrollmentType `json:"type"`
	EnrolledAt time.Time      `json:"enrolledAt"`
}

// EnrollmentType records how the student obtained access.
type EnrollmentType string

const (
	// EnrollmentPaid indicates access granted through a completed payment.
	EnrollmentPaid EnrollmentType = "Paid"
	// EnrollmentFree indicates access to a zero-price course.
	EnrollmentFree EnrollmentType = "Free"
	// EnrollmentManual indicates access granted by an admin.
	EnrollmentManual EnrollmentType = "Manual"
)
