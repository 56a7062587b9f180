package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	"github.com/pkrylov/shareit-service/internal/handler"
	"github.com/pkrylov/shareit-service/internal/model"
	md "github.com/pkrylov/shareit-service/pkg/middleware"
	"github.com/pkrylov/shareit-service/pkg/validate"

	service_mocks "github.com/pkrylov/shareit-service/internal/handler/mocks"
)

func testBooking() model.Booking {
	return model.Booking{
		ID:     1,
		Start:  model.NewDateTime(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
		End:    model.NewDateTime(time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)),
		Status: model.StatusWaiting,
		Item:   model.Item{ID: 2, Name: "drill", Description: "cordless drill", Available: true, OwnerID: 7},
		Booker: model.User{ID: 3, Name: "bob", Email: "bob@mail.com"},
	}
}

const testBookingJSON = `{"id":1,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00","status":"WAITING","item":{"id":2,"name":"drill","description":"cordless drill","available":true},"booker":{"id":3,"name":"bob","email":"bob@mail.com"}}`

func newTestRouter(h *handler.Handler) *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/bookings", h.CreateBooking, md.UserIdentity)
	e.GET("/bookings", h.GetBookingsByBooker, md.UserIdentity)
	e.GET("/bookings/owner", h.GetBookingsByOwner, md.UserIdentity)
	e.GET("/bookings/:bookingId", h.GetBooking, md.UserIdentity)
	e.PATCH("/bookings/:bookingId", h.ConfirmBooking, md.UserIdentity)
	return e
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		userID       string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok",
			userID: "3",
			body:   `{"itemId":2,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					Create(context.Background(), int64(3), gomock.Any()).
					Return(testBooking(), nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: testBookingJSON,
			},
		},
		{
			name:         "err. missing identity header",
			userID:       "",
			body:         `{"itemId":2,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"missing X-Sharer-User-Id header"}`,
			},
		},
		{
			name:         "err. non-positive identity header",
			userID:       "0",
			body:         `{"itemId":2,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid X-Sharer-User-Id header"}`,
			},
		},
		{
			name:   "err. owner books own item",
			userID: "7",
			body:   `{"itemId":2,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					Create(context.Background(), int64(7), gomock.Any()).
					Return(model.Booking{}, errors.Wrap(errs.ErrForbidden, "owner cannot book own item"))
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"owner cannot book own item: forbidden"}`,
			},
		},
		{
			name:   "err. item unavailable",
			userID: "3",
			body:   `{"itemId":2,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					Create(context.Background(), int64(3), gomock.Any()).
					Return(model.Booking{}, errors.Wrapf(errs.ErrInvalidState, "item %d is not available", 2))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"item 2 is not available: invalid state"}`,
			},
		},
		{
			name:   "err. unknown item",
			userID: "3",
			body:   `{"itemId":404,"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					Create(context.Background(), int64(3), gomock.Any()).
					Return(model.Booking{}, errs.ErrItemNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"item not found"}`,
			},
		},
		{
			name:         "err. itemId required",
			userID:       "3",
			body:         `{"start":"2026-09-01T12:00:00","end":"2026-09-02T12:00:00"}`,
			mockBehavior: func(r *service_mocks.MockBookingService) {},
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
			bookingSvc := service_mocks.NewMockBookingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(bookingSvc, nil, nil, nil, log)
			e := newTestRouter(h)

			r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.userID != "" {
				r.Header.Set(md.UserIDHeader, tt.userID)
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ConfirmBooking(t *testing.T) {
	t.Parallel()
	type input struct {
		bookingID string
		approved  string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	approvedBooking := testBooking()
	approvedBooking.Status = model.StatusApproved

	var tests = []struct {
		name         string
		input        input
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok",
			input: input{bookingID: "1", approved: "true"},
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(7), int64(1), true).
					Return(approvedBooking, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: strings.Replace(testBookingJSON, `"status":"WAITING"`, `"status":"APPROVED"`, 1),
			},
		},
		{
			name:  "err. already approved",
			input: input{bookingID: "1", approved: "true"},
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(7), int64(1), true).
					Return(model.Booking{}, errors.Wrap(errs.ErrInvalidState, "booking is already approved"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"booking is already approved: invalid state"}`,
			},
		},
		{
			name:  "err. not the owner",
			input: input{bookingID: "1", approved: "false"},
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(7), int64(1), false).
					Return(model.Booking{}, errors.Wrapf(errs.ErrForbidden, "user %d is not the owner", 7))
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"user 7 is not the owner: forbidden"}`,
			},
		},
		{
			name:         "err. bad approved param",
			input:        input{bookingID: "1", approved: "maybe"},
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"approved is invalid"}`,
			},
		},
		{
			name:         "err. bad booking id",
			input:        input{bookingID: "zero", approved: "true"},
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"bookingId is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			bookingSvc := service_mocks.NewMockBookingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(bookingSvc, nil, nil, nil, log)
			e := newTestRouter(h)

			r := httptest.NewRequest(http.MethodPatch,
				fmt.Sprintf("/bookings/%s?approved=%s", tt.input.bookingID, tt.input.approved), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(md.UserIDHeader, "7")
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBookingsByBooker(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		path         string
		query        string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok default paging",
			query: "",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListByBooker(context.Background(), int64(3), "ALL", 0, 10).
					Return([]model.Booking{testBooking()}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: "[" + testBookingJSON + "]",
			},
		},
		{
			name:  "ok empty list",
			query: "?state=REJECTED",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListByBooker(context.Background(), int64(3), "REJECTED", 0, 10).
					Return([]model.Booking{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
		{
			name:  "err. unknown state",
			query: "?state=BOGUS",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListByBooker(context.Background(), int64(3), "BOGUS", 0, 10).
					Return(nil, fmt.Errorf("%w: BOGUS", errs.ErrUnknownState))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"unknown state: BOGUS"}`,
			},
		},
		{
			name:         "err. size out of range",
			query:        "?size=21",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"size is invalid"}`,
			},
		},
		{
			name:         "err. negative from",
			query:        "?from=-1",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"from is invalid"}`,
			},
		},
		{
			name: "err. booker without items listing as owner",
			path: "/bookings/owner",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListByOwner(context.Background(), int64(3), "ALL", 0, 10).
					Return(nil, errors.Wrapf(errs.ErrItemNotFound, "user %d has no items", 3))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"user 3 has no items: item not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			bookingSvc := service_mocks.NewMockBookingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(bookingSvc, nil, nil, nil, log)
			e := newTestRouter(h)

			if tt.path == "" {
				tt.path = "/bookings"
			}
			r := httptest.NewRequest(http.MethodGet, tt.path+tt.query, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(md.UserIDHeader, "3")
			w := httptest.NewRecorder()

			tt.mockBehavior(bookingSvc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
