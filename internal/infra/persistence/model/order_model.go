package model

import (
	"time"

	"github.com/google/uuid"

	"eduvn/internal/domain/entity"
)

// OrderModel mirrors the 'orders' table. OrderCode is the numeric identifier
// shared with the checkout provider.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderCode int64     `gorm:"unique;not null"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// ToEntity converts the persistence model into the domain entity.
func (m *OrderModel) ToEntity() *entity.Order {
	return &entity.Order{
		ID:        m.ID,
		OrderCode: m.OrderCode,
		StudentID: m.StudentID,
		CourseID:  m.CourseID,
		Amount:    m.Amount,
		Status:    entity.OrderStatus(m.Status),
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// OrderModelFromEntity converts a domain entity into the persistence model.
func OrderModelFromEntity(order *entity.Order) *OrderModel {
	return &OrderModel{
		ID:        order.ID,
		OrderCode: order.OrderCode,
		StudentID: order.StudentID,
		CourseID:  order.CourseID,
		Amount:    order.Amount,
		Status:    string(order.Status),
		PaidAt:    order.PaidAt,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// EnrollmentModel mirrors the 'enrollments' table. A student enrolls in a
// course at most once.
type EnrollmentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course"`
	Type       string    `gorm:"type:varchar(20);not null"`
	EnrolledAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// ToEntity converts the persistence model into the domain entity.
func (m *EnrollmentModel) ToEntity() *entity.Enrollment {
	return &entity.Enrollment{
		ID:         m.ID,
		StudentID:  m.StudentID,
		CourseID:   m.CourseID,
		Type:       entity.EnrollmentType(m.Type),
		EnrolledAt: m.EnrolledAt,
	}
}

// EnrollmentModelFromEntity converts a domain entity into the persistence model.
func EnrollmentModelFromEntity(enrollment *entity.Enrollment) *EnrollmentModel {
	return &EnrollmentModel{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		Type:       string(enrollment.Type),
		EnrolledAt: enrollment.EnrolledAt,
	}
}
