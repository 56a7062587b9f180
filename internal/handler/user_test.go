package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/handler"
	"github.com/pkrylov/shareit-service/internal/model"
	"github.com/pkrylov/shareit-service/pkg/validate"

	service_mocks "github.com/pkrylov/shareit-service/internal/handler/mocks"
)

func TestHandler_CreateUser(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockUserService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"name":"alice","email":"alice@mail.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Create(context.Background(), model.CreateUserRequest{Name: "alice", Email: "alice@mail.com"}).
					Return(model.User{ID: 1, Name: "alice", Email: "alice@mail.com"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"name":"alice","email":"alice@mail.com"}`,
			},
		},
		{
			name: "err. duplicate email",
			body: `{"name":"alice","email":"alice@mail.com"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {
				r.EXPECT().
					Create(context.Background(), model.CreateUserRequest{Name: "alice", Email: "alice@mail.com"}).
					Return(model.User{}, errs.ErrEmailUsed)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"email already in use"}`,
			},
		},
		{
			name:         "err. malformed email",
			body:         `{"name":"alice","email":"not-an-email"}`,
			mockBehavior: func(r *service_mocks.MockUserService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			userSvc := service_mocks.NewMockUserService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, nil, userSvc, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/users", h.CreateUser)

			r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(userSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	userSvc := service_mocks.NewMockUserService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(nil, nil, userSvc, nil, log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.PATCH("/users/:userId", h.UpdateUser)

	name := "alice updated"
	userSvc.EXPECT().
		Update(context.Background(), int64(1), model.UpdateUserRequest{Name: &name}).
		Return(model.User{ID: 1, Name: name, Email: "alice@mail.com"}, nil)

	r := httptest.NewRequest(http.MethodPatch, "/users/1", strings.NewReader(`{"name":"alice updated"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"id":1,"name":"alice updated","email":"alice@mail.com"}`, strings.Trim(w.Body.String(), "\n"))
}
