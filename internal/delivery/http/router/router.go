// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"eduvn/internal/delivery/http/middleware"
	"eduvn/internal/delivery/http/router/handler"
	"eduvn/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CourseHandler  *handler.CourseHandler
	LessonHandler  *handler.LessonHandler
	PaymentHandler *handler.PaymentHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	courseHandler  *handler.CourseHandler
	lessonHandler  *handler.LessonHandler
	paymentHandler *handler.PaymentHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		courseHandler:  params.CourseHandler,
		lessonHandler:  params.LessonHandler,
		paymentHandler: params.PaymentHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Public catalog
	courseGroup := e.Group("/courses")
	{
		courseGroup.GET("", r.courseHandler.List)
		courseGroup.GET("/my-courses", r.courseHandler.MyCourses,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
		courseGroup.GET("/:id", r.courseHandler.Get)
		courseGroup.GET("/:courseId/lessons", r.lessonHandler.ListByCourse)

		// Authoring routes require an instructor or admin.
		courseGroup.POST("", r.courseHandler.Create,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
		courseGroup.PUT("/:id", r.courseHandler.Update,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
		courseGroup.DELETE("/:id", r.courseHandler.Delete,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
	}

	lessonGroup := e.Group("/lessons")
	{
		lessonGroup.GET("/:id", r.lessonHandler.Get)

		lessonGroup.POST("", r.lessonHandler.Create,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
		lessonGroup.PUT("/:id", r.lessonHandler.Update,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
		lessonGroup.DELETE("/:id", r.lessonHandler.Delete,
			r.authMiddleware.Authenticate,
			r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
	}

	// Payments. The webhook authenticates via its payload signature, so it
	// stays outside the auth middleware.
	paymentGroup := e.Group("/payments")
	{
		paymentGroup.POST("/create-link", r.paymentHandler.CreateLink, r.authMiddleware.Authenticate)
		paymentGroup.GET("/enrollments/:courseId", r.paymentHandler.Enrollment, r.authMiddleware.Authenticate)
		paymentGroup.POST("/webhook", r.paymentHandler.Webhook)
	}

	// Course asset uploads
	e.POST("/upload", r.uploadHandler.Upload,
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin))
}
