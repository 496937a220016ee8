package handler

import (
	"net/http"

	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cover, err := formUpload(c, "cover_image")
	if err != nil {
		return err
	}
	defer closeUpload(cover)

	b, err := h.bookSvc.Create(c.Request().Context(), req, cover)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) ListBooks(c echo.Context) error {
	items, err := h.bookSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	b, err := h.bookSvc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cover, err := formUpload(c, "cover_image")
	if err != nil {
		return err
	}
	defer closeUpload(cover)

	b, err := h.bookSvc.Update(c.Request().Context(), id, req, cover)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.bookSvc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted successfully"})
}

func (h *Handler) GetBookCover(c echo.Context) error {
	path, err := h.bookSvc.CoverPath(c.Param("filename"))
	if err != nil {
		return httpError(err)
	}
	return c.File(path)
}
