package handler

import (
	"net/http"

	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateStudent(c echo.Context) error {
	var req model.CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	photo, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closeUpload(photo)

	st, err := h.studentSvc.Create(c.Request().Context(), req, photo)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *Handler) ListStudents(c echo.Context) error {
	items, err := h.studentSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetStudent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	st, err := h.studentSvc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateStudent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	photo, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closeUpload(photo)

	st, err := h.studentSvc.Update(c.Request().Context(), id, req, photo)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) DeleteStudent(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.studentSvc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student deleted successfully"})
}

func (h *Handler) GetStudentPhoto(c echo.Context) error {
	path, err := h.studentSvc.PhotoPath(c.Param("filename"))
	if err != nil {
		return httpError(err)
	}
	return c.File(path)
}
