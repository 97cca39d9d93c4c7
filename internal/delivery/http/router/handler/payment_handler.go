package handler

import (
	"log/slog"
	"net/http"

	"eduvn/internal/delivery/http/middleware"
	"eduvn/internal/delivery/http/response"
	"eduvn/internal/domain/service"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for checkout and webhook handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: logger}
}

type checkoutRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
}

// CreateLink starts a purchase for the acting student.
func (h *PaymentHandler) CreateLink(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	out, err := h.uc.Checkout(c.Request().Context(), actor.ID, courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"checkoutUrl": out.CheckoutURL,
		"orderCode":   out.OrderCode,
		"enrollment":  out.Enrollment,
	}, "")
}

// Webhook receives the provider's payment-result callback. The provider
// authenticates via the payload signature, not a bearer token, so this
// endpoint sits outside the auth middleware.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	var webhook service.PaymentWebhook
	if err := c.Bind(&webhook); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid webhook payload")
	}

	if err := h.uc.HandleWebhook(c.Request().Context(), &webhook); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Webhook processed")
}

// Enrollment reports whether the acting student has access to a course.
func (h *PaymentHandler) Enrollment(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	enrolled, err := h.uc.IsEnrolled(c.Request().Context(), actor.ID, courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"enrolled": enrolled}, "")
}
