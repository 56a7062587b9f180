package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pkrylov/shareit-service/internal/model"
	md "github.com/pkrylov/shareit-service/pkg/middleware"
)

func (h *Handler) CreateItem(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	var req model.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	item, err := h.itemSvc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	h.log.Debug("item created", zap.Int64("item_id", item.ID), zap.Int64("owner_id", userID))
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	item, err := h.itemSvc.Update(c.Request().Context(), userID, itemID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	if err := h.itemSvc.Delete(c.Request().Context(), itemID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) GetItem(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	view, err := h.itemSvc.GetByID(c.Request().Context(), userID, itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetItemsByOwner(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	from, size, err := paging(c)
	if err != nil {
		return err
	}
	views, err := h.itemSvc.ListByOwner(c.Request().Context(), userID, from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) SearchItems(c echo.Context) error {
	if _, err := md.UserID(c); err != nil {
		return err
	}
	from, size, err := paging(c)
	if err != nil {
		return err
	}
	items, err := h.itemSvc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c echo.Context) error {
	userID, err := md.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	comment, err := h.itemSvc.AddComment(c.Request().Context(), userID, itemID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}
