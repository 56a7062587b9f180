package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pkrylov/shareit-service/internal/model"
	md "github.com/pkrylov/shareit-service/pkg/middleware"
)

func (h *Handler) CreateRequest(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	var req model.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	request, err := h.requestSvc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, request)
}

func (h *Handler) GetOwnRequests(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	from, size, err := paging(c)
	if err != nil {
		return err
	}
	requests, err := h.requestSvc.ListOwn(c.Request().Context(), userID, from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *Handler) GetOtherRequests(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	from, size, err := paging(c)
	if err != nil {
		return err
	}
	requests, err := h.requestSvc.ListOthers(c.Request().Context(), userID, from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *Handler) GetRequest(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	request, err := h.requestSvc.GetByID(c.Request().Context(), userID, requestID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, request)
}
