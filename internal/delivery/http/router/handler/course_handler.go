package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"eduvn/internal/delivery/http/middleware"
	"eduvn/internal/delivery/http/response"
	"eduvn/internal/domain/repository"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CourseHandler holds dependencies for course catalog handlers.
type CourseHandler struct {
	uc     usecase.CourseUsecase
	logger *slog.Logger
}

// NewCourseHandler is the constructor for CourseHandler, injected by Fx.
func NewCourseHandler(uc usecase.CourseUsecase, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{uc: uc, logger: logger}
}

type courseRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Subject      string `json:"subject"`
	Grade        int    `json:"grade" validate:"omitempty,min=1,max=12"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Price        int64  `json:"price" validate:"min=0"`
	IsPublished  bool   `json:"isPublished"`
}

func (r courseRequest) toInput() usecase.CourseInput {
	return usecase.CourseInput{
		Title:        r.Title,
		Description:  r.Description,
		Subject:      r.Subject,
		Grade:        r.Grade,
		ThumbnailURL: r.ThumbnailURL,
		Price:        r.Price,
		IsPublished:  r.IsPublished,
	}
}

// List returns the filtered public catalog.
func (h *CourseHandler) List(c echo.Context) error {
	filter := repository.CourseFilter{
		Search:  c.QueryParam("search"),
		Subject: c.QueryParam("subject"),
	}
	filter.Grade, _ = strconv.Atoi(c.QueryParam("grade"))
	filter.MinPrice, _ = strconv.ParseInt(c.QueryParam("minPrice"), 10, 64)
	filter.MaxPrice, _ = strconv.ParseInt(c.QueryParam("maxPrice"), 10, 64)
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))

	page, err := h.uc.ListCourses(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Get returns one course with its lessons.
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	course, lessons, err := h.uc.GetCourse(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"course":  course,
		"lessons": lessons,
	}, "")
}

// MyCourses returns the acting instructor's courses, drafts included.
func (h *CourseHandler) MyCourses(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	courses, err := h.uc.ListInstructorCourses(c.Request().Context(), actor.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, courses, "")
}

// Create creates a course owned by the acting instructor.
func (h *CourseHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.uc.CreateCourse(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, course, "Course created")
}

// Update modifies a course owned by the actor.
func (h *CourseHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.uc.UpdateCourse(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, course, "Course updated")
}

// Delete removes a course owned by the actor.
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course id")
	}

	if err := h.uc.DeleteCourse(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Course deleted")
}
