// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"eduvn/config"
	deliverycontext "eduvn/internal/delivery/context"
	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/domain/service"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	txManager      repository.TransactionManager
	courseRepo     repository.CourseRepository
	orderRepo      repository.OrderRepository
	enrollmentRepo repository.EnrollmentRepository
	provider       service.PaymentService
	returnURL      string
	cancelURL      string
	logger         *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(
	txManager repository.TransactionManager,
	courseRepo repository.CourseRepository,
	orderRepo repository.OrderRepository,
	enrollmentRepo repository.EnrollmentRepository,
	provider service.PaymentService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	srv := &paymentService{
		txManager:      txManager,
		courseRepo:     courseRepo,
		orderRepo:      orderRepo,
		enrollmentRepo: enrollmentRepo,
		provider:       provider,
		logger:         logger,
	}
	if cfg.PayOS != nil {
		srv.returnURL = cfg.PayOS.ReturnURL
		srv.cancelURL = cfg.PayOS.CancelURL
	}

	return srv
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout starts a purchase. Free courses enroll immediately; paid courses
// get a pending order and a hosted checkout link.
func (srv *paymentService) Checkout(ctx context.Context, studentID, courseID uuid.UUID) (*usecase.CheckoutOutput, error) {
	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, domainerrors.ErrCourseNotFound
		}

		return nil, errors.Wrap(err, "failed to find course")
	}

	enrolled, err := srv.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check enrollment")
	}
	if enrolled {
		return nil, domainerrors.ErrConflict.WrapMessage("already enrolled")
	}

	if course.Price == 0 {
		enrollment := &entity.Enrollment{
			StudentID:  studentID,
			CourseID:   courseID,
			Type:       entity.EnrollmentFree,
			EnrolledAt: time.Now(),
		}
		if err := srv.enrollmentRepo.Create(ctx, enrollment); err != nil {
			return nil, err
		}

		srv.log(ctx).Info("Free enrollment created",
			slog.Any("studentID", studentID),
			slog.Any("courseID", courseID))

		return &usecase.CheckoutOutput{Enrollment: enrollment}, nil
	}

	order := &entity.Order{
		OrderCode: newOrderCode(),
		StudentID: studentID,
		CourseID:  courseID,
		Amount:    course.Price,
		Status:    entity.OrderPending,
	}
	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	checkoutURL, err := srv.provider.CreatePaymentLink(ctx, service.PaymentLinkRequest{
		OrderCode:   order.OrderCode,
		Amount:      order.Amount,
		// The provider caps descriptions at 25 characters.
		Description: fmt.Sprintf("Order %d", order.OrderCode),
		ReturnURL:   srv.returnURL,
		CancelURL:   srv.cancelURL,
	})
	if err != nil {
		// The pending order stays around; the provider never saw it or
		// rejected it, so it can simply age out.
		return nil, err
	}

	srv.log(ctx).Info("Payment link created",
		slog.Int64("orderCode", order.OrderCode),
		slog.Any("studentID", studentID))

	return &usecase.CheckoutOutput{
		CheckoutURL: checkoutURL,
		OrderCode:   order.OrderCode,
	}, nil
}

// HandleWebhook processes the provider's payment-result callback. The order
// transition and the enrollment happen in one transaction; replayed webhooks
// find a non-pending order and change nothing.
func (srv *paymentService) HandleWebhook(ctx context.Context, webhook *service.PaymentWebhook) error {
	if err := srv.provider.VerifyWebhook(webhook); err != nil {
		return domainerrors.ErrWebhookSignatureInvalid
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByOrderCode(ctx, webhook.Data.OrderCode)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				// The provider sends test pings with synthetic order codes.
				srv.log(ctx).Warn("Webhook for unknown order",
					slog.Int64("orderCode", webhook.Data.OrderCode))

				return nil
			}

			return errors.Wrap(err, "failed to find order")
		}

		if order.Status != entity.OrderPending {
			return nil
		}

		if !webhook.Success {
			order.Status = entity.OrderFailed
			if err := orderRepo.Update(ctx, order); err != nil {
				return err
			}

			return nil
		}

		now := time.Now()
		order.Status = entity.OrderPaid
		order.PaidAt = &now
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		enrollment := &entity.Enrollment{
			StudentID:  order.StudentID,
			CourseID:   order.CourseID,
			Type:       entity.EnrollmentPaid,
			EnrolledAt: now,
		}
		if err := repoFactory.EnrollmentRepo().Create(ctx, enrollment); err != nil {
			return err
		}

		srv.log(ctx).Info("Payment confirmed",
			slog.Int64("orderCode", order.OrderCode),
			slog.Any("studentID", order.StudentID))

		return nil
	})
}

// IsEnrolled reports whether the student has access to the course.
func (srv *paymentService) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	enrolled, err := srv.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check enrollment")
	}

	return enrolled, nil
}

// newOrderCode builds a provider-safe numeric order code: unix milliseconds
// plus a random suffix, comfortably inside the provider's 15-digit limit.
func newOrderCode() int64 {
	return time.Now().UnixMilli()*100 + rand.Int64N(100)
}
