package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eduvn/internal/delivery/http/validator"
	"eduvn/internal/domain/entity"
	"eduvn/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the register input it receives and returns a
// canned session.
type stubAuthUsecase struct {
	registered *usecase.RegisterInput
}

func (s *stubAuthUsecase) Register(_ context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	s.registered = &input

	return &usecase.AuthOutput{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: &entity.User{
			Email:    input.Email,
			FullName: input.FullName,
			Role:     entity.RoleStudent,
			Status:   entity.StatusApproved,
		},
	}, nil
}

func (s *stubAuthUsecase) Login(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
	return nil, nil
}

func (s *stubAuthUsecase) RefreshSession(context.Context, string) (*usecase.AuthOutput, error) {
	return nil, nil
}

func (s *stubAuthUsecase) Logout(context.Context, string) error {
	return nil
}

func (s *stubAuthUsecase) GoogleLogin(context.Context, usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	return nil, nil
}

func registerCall(t *testing.T, body string) (*stubAuthUsecase, *httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	uc := &stubAuthUsecase{}
	h := NewAuthHandler(uc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return uc, rec, h.Register(e.NewContext(req, rec))
}

func TestRegister_AcceptsSixCharacterPassword(t *testing.T) {
	uc, rec, err := registerCall(t,
		`{"email":"a@x.com","password":"secret","fullName":"Ann","grade":12,"school":"Lyceum"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.registered)
	assert.Equal(t, "secret", uc.registered.Password)
	require.NotNil(t, uc.registered.Grade)
	assert.Equal(t, 12, *uc.registered.Grade)
}

func TestRegister_RejectsFiveCharacterPassword(t *testing.T) {
	uc, _, err := registerCall(t,
		`{"email":"a@x.com","password":"short","fullName":"Ann"}`)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Nil(t, uc.registered)
}

func TestRegister_IgnoresRoleField(t *testing.T) {
	uc, rec, err := registerCall(t,
		`{"email":"a@x.com","password":"secret1","fullName":"Ann","role":"Instructor"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.registered)
}
