package handler

import (
	"log/slog"
	"net/http"

	"eduvn/internal/delivery/http/middleware"
	"eduvn/internal/delivery/http/response"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LessonHandler holds dependencies for lesson content handlers.
type LessonHandler struct {
	uc     usecase.LessonUsecase
	logger *slog.Logger
}

// NewLessonHandler is the constructor for LessonHandler, injected by Fx.
func NewLessonHandler(uc usecase.LessonUsecase, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{uc: uc, logger: logger}
}

type lessonRequest struct {
	Title       string `json:"title" validate:"required"`
	VideoURL    string `json:"videoUrl"`
	DocumentURL string `json:"documentUrl"`
	OrderIndex  int    `json:"orderIndex" validate:"min=0"`
	Duration    int    `json:"duration" validate:"min=0"`
	IsPublished bool   `json:"isPublished"`
}

func (r lessonRequest) toInput() usecase.LessonInput {
	return usecase.LessonInput{
		Title:       r.Title,
		VideoURL:    r.VideoURL,
		DocumentURL: r.DocumentURL,
		OrderIndex:  r.OrderIndex,
		Duration:    r.Duration,
		IsPublished: r.IsPublished,
	}
}

type createLessonRequest struct {
	lessonRequest
	CourseID string `json:"courseId" validate:"required,uuid"`
}

// ListByCourse returns the lessons of one course in order.
func (h *LessonHandler) ListByCourse(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	lessons, err := h.uc.ListLessons(c.Request().Context(), courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lessons, "")
}

// Get returns a single lesson.
func (h *LessonHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson id")
	}

	lesson, err := h.uc.GetLesson(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lesson, "")
}

// Create adds a lesson to a course owned by the actor.
func (h *LessonHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	var req createLessonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	lesson, err := h.uc.CreateLesson(c.Request().Context(), actor, courseID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, lesson, "Lesson created")
}

// Update modifies a lesson within a course owned by the actor.
func (h *LessonHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson id")
	}

	var req lessonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lesson, err := h.uc.UpdateLesson(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, lesson, "Lesson updated")
}

// Delete removes a lesson from a course owned by the actor.
func (h *LessonHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson id")
	}

	if err := h.uc.DeleteLesson(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Lesson deleted")
}
