package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/model"
	md "github.com/pkrylov/shareit-service/pkg/middleware"
)

func (h *Handler) CreateBooking(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.bookingSvc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	h.log.Debug("booking created",
		zap.Int64("booking_id", booking.ID), zap.Int64("booker_id", userID))
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) ConfirmBooking(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved is invalid")
	}
	booking, err := h.bookingSvc.SetApproval(c.Request().Context(), userID, bookingID, approved)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBooking(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	booking, err := h.bookingSvc.Get(c.Request().Context(), userID, bookingID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBookingsByBooker(c echo.Context) error {
	return listBookings(c, h.bookingSvc.ListByBooker)
}

func (h *Handler) GetBookingsByOwner(c echo.Context) error {
	return listBookings(c, h.bookingSvc.ListByOwner)
}

type listBookingsFunc func(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)

func listBookings(c echo.Context, list listBookingsFunc) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	from, size, err := paging(c)
	if err != nil {
		return err
	}
	state := c.QueryParam("state")
	if state == "" {
		state = string(model.StateAll)
	}
	bookings, err := list(c.Request().Context(), userID, state, from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}
