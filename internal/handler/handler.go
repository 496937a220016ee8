package handler

import (
	"net/http"
	"strconv"

	md "github.com/Astemirdum/library-rental/pkg/middleware"
	"github.com/Astemirdum/library-rental/pkg/validate"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	studentSvc StudentService
	bookSvc    BookService
	rentalSvc  RentalService
	log        *zap.Logger
}

func New(studentSvc StudentService, bookSvc BookService, rentalSvc RentalService, log *zap.Logger) *Handler {
	return &Handler{
		studentSvc: studentSvc,
		bookSvc:    bookSvc,
		rentalSvc:  rentalSvc,
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
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/students", h.CreateStudent)
	api.GET("/students", h.ListStudents)
	api.GET("/students/photo/:filename", h.GetStudentPhoto)
	api.GET("/students/:id", h.GetStudent)
	api.PATCH("/students/:id", h.UpdateStudent)
	api.DELETE("/students/:id", h.DeleteStudent)

	api.POST("/books", h.CreateBook)
	api.GET("/books", h.ListBooks)
	api.GET("/books/cover/:filename", h.GetBookCover)
	api.GET("/books/:id", h.GetBook)
	api.PATCH("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.POST("/orders", h.CreateOrder)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/return", h.ReturnOrder)
	api.PUT("/orders/:id", h.UpdateOrder)
	api.DELETE("/orders/:id", h.DeleteOrder)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps the service error taxonomy onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

// formUpload extracts an optional image from a multipart form field.
// The returned upload's Content must be closed by the caller.
func formUpload(c echo.Context, field string) (*media.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &media.Upload{Filename: fh.Filename, Content: f}, nil
}

func closeUpload(up *media.Upload) {
	if up == nil {
		return
	}
	if closer, ok := up.Content.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
