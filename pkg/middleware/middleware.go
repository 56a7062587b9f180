package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// UserIDHeader carries the acting user's identity on every authenticated call.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "shareit.userID"

// UserIdentity rejects requests without a positive X-Sharer-User-Id header
// before any business logic runs.
func UserIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(UserIDHeader)
		if raw == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing "+UserIDHeader+" header")
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid "+UserIDHeader+" header")
		}
		c.Set(userIDKey, id)
		return next(c)
	}
}

// UserID returns the identity put in place by UserIdentity.
func UserID(c echo.Context) (int64, error) {
	id, ok := c.Get(userIDKey).(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing "+UserIDHeader+" header")
	}
	return id, nil
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	return middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
