package handler

import (
	"net/http"

	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateOrder(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.rentalSvc.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListOrders(c echo.Context) error {
	items, err := h.rentalSvc.ListOrders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	o, err := h.rentalSvc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ReturnOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	o, err := h.rentalSvc.ReturnOrder(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.rentalSvc.UpdateOrder(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.rentalSvc.DeleteOrder(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted successfully"})
}
