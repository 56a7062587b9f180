package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/errs"
	md "github.com/pkrylov/shareit-service/pkg/middleware"
	"github.com/pkrylov/shareit-service/pkg/validate"
)

type Handler struct {
	bookingSvc BookingService
	itemSvc    ItemService
	userSvc    UserService
	requestSvc RequestService
	log        *zap.Logger
}

func New(bookingSvc BookingService, itemSvc ItemService, userSvc UserService, requestSvc RequestService, log *zap.Logger) *Handler {
	return &Handler{
		bookingSvc: bookingSvc,
		itemSvc:    itemSvc,
		userSvc:    userSvc,
		requestSvc: requestSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.GetUsers)
	users.GET("/:userId", h.GetUser)
	users.PATCH("/:userId", h.UpdateUser)
	users.DELETE("/:userId", h.DeleteUser)

	items := api.Group("/items", md.UserIdentity)
	items.POST("", h.CreateItem)
	items.GET("", h.GetItemsByOwner)
	items.GET("/search", h.SearchItems)
	items.GET("/:itemId", h.GetItem)
	items.PATCH("/:itemId", h.UpdateItem)
	items.DELETE("/:itemId", h.DeleteItem)
	items.POST("/:itemId/comment", h.AddComment)

	bookings := api.Group("/bookings", md.UserIdentity)
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.GetBookingsByBooker)
	bookings.GET("/owner", h.GetBookingsByOwner)
	bookings.GET("/:bookingId", h.GetBooking)
	bookings.PATCH("/:bookingId", h.ConfirmBooking)

	requests := api.Group("/requests", md.UserIdentity)
	requests.POST("", h.CreateRequest)
	requests.GET("", h.GetOwnRequests)
	requests.GET("/all", h.GetOtherRequests)
	requests.GET("/:requestId", h.GetRequest)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError translates the service error taxonomy into transport codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errs.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrUnknownState):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrEmailUsed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// paging parses the from/size query pair: from >= 0 (default 0),
// size 1..20 (default 10). Callers pass offset-compatible from values.
func paging(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if raw := c.QueryParam("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil || from < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "from is invalid")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil || size < 1 || size > 20 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}
	return from, size, nil
}
