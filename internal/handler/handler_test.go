package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-rental/internal/errs"
	"github.com/Astemirdum/library-rental/internal/handler"
	"github.com/Astemirdum/library-rental/internal/model"
	"github.com/Astemirdum/library-rental/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/library-rental/internal/handler/mocks"
)

func testDate(t *testing.T, s string) model.Date {
	t.Helper()
	tt, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return model.NewDate(tt)
}

func newTestEcho(t *testing.T) (*echo.Echo, *service_mocks.MockStudentService, *service_mocks.MockBookService, *service_mocks.MockRentalService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	studentSvc := service_mocks.NewMockStudentService(c)
	bookSvc := service_mocks.NewMockBookService(c)
	rentalSvc := service_mocks.NewMockRentalService(c)
	h := handler.New(studentSvc, bookSvc, rentalSvc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/orders", h.CreateOrder)
	e.POST("/orders/:id/return", h.ReturnOrder)
	e.GET("/orders/:id", h.GetOrder)
	e.DELETE("/orders/:id", h.DeleteOrder)
	e.POST("/students", h.CreateStudent)
	e.GET("/students/:id", h.GetStudent)
	e.DELETE("/books/:id", h.DeleteBook)
	return e, studentSvc, bookSvc, rentalSvc
}

func TestHandler_CreateOrder(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	activeOrder := model.Order{
		ID:         7,
		StudentID:  1,
		BookID:     2,
		RentPerDay: 10,
		RentedDate: model.Date{},
		TotalDays:  1,
		TotalRent:  10,
		Student:    model.Student{ID: 1, Name: "Al", Email: "al@x.com"},
		Book:       model.Book{ID: 2, Title: "Dune", Author: "Herbert"},
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"student_id":1,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				o := activeOrder
				o.RentedDate = testDate(t, "2024-03-01")
				r.EXPECT().
					CreateOrder(context.Background(), model.CreateOrderRequest{StudentID: 1, BookID: 2}).
					Return(o, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":7,"student_id":1,"book_id":2,"rent_per_day":10,"rented_date":"2024-03-01","return_date":null,"total_days":1,"total_rent":10,"student":{"id":1,"name":"Al","email":"al@x.com","photo":null},"book":{"id":2,"title":"Dune","author":"Herbert","cover_image":null}}`,
			},
		},
		{
			name: "book already rented",
			body: `{"student_id":3,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateOrder(context.Background(), model.CreateOrderRequest{StudentID: 3, BookID: 2}).
					Return(model.Order{}, errors.Wrap(errs.ErrConflict, "book is already rented"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book is already rented: conflict"}`,
			},
		},
		{
			name: "student not found",
			body: `{"student_id":99,"book_id":2}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateOrder(context.Background(), model.CreateOrderRequest{StudentID: 99, BookID: 2}).
					Return(model.Order{}, errors.Wrap(errs.ErrNotFound, "student"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"student: not found"}`,
			},
		},
		{
			name:         "missing book_id",
			body:         `{"student_id":1}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, _, rentalSvc := newTestEcho(t)
			tt.mockBehavior(rentalSvc)

			r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnOrder(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}

	var tests = []struct {
		name         string
		target       string
		mockBehavior func(r *service_mocks.MockRentalService)
		response     response
	}{
		{
			name:   "ok",
			target: "/orders/7/return",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ReturnOrder(context.Background(), 7).
					Return(model.Order{
						ID:         7,
						StudentID:  1,
						BookID:     2,
						RentPerDay: 10,
						RentedDate: testDate(t, "2024-03-01"),
						ReturnDate: model.NullDate{Date: testDate(t, "2024-03-03"), Valid: true},
						TotalDays:  3,
						TotalRent:  30,
						Student:    model.Student{ID: 1, Name: "Al", Email: "al@x.com"},
						Book:       model.Book{ID: 2, Title: "Dune", Author: "Herbert"},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":7,"student_id":1,"book_id":2,"rent_per_day":10,"rented_date":"2024-03-01","return_date":"2024-03-03","total_days":3,"total_rent":30,"student":{"id":1,"name":"Al","email":"al@x.com","photo":null},"book":{"id":2,"title":"Dune","author":"Herbert","cover_image":null}}`,
			},
		},
		{
			name:   "already returned",
			target: "/orders/7/return",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ReturnOrder(context.Background(), 7).
					Return(model.Order{}, errors.Wrap(errs.ErrConflict, "book already returned"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book already returned: conflict"}`,
			},
		},
		{
			name:   "not found",
			target: "/orders/42/return",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ReturnOrder(context.Background(), 42).
					Return(model.Order{}, errors.Wrap(errs.ErrNotFound, "order"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"order: not found"}`,
			},
		},
		{
			name:         "invalid id",
			target:       "/orders/abc/return",
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"id is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, _, rentalSvc := newTestEcho(t)
			tt.mockBehavior(rentalSvc)

			r := httptest.NewRequest(http.MethodPost, tt.target, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_CreateStudent(t *testing.T) {
	t.Parallel()

	e, studentSvc, _, _ := newTestEcho(t)

	photoURL := "http://localhost:8080/api/v1/students/photo/ab12.png"
	studentSvc.EXPECT().
		Create(gomock.Any(), model.CreateStudentRequest{Name: "Al", Email: "al@x.com"}, gomock.Any()).
		Return(model.Student{ID: 1, Name: "Al", Email: "al@x.com", Photo: &photoURL}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Al"))
	require.NoError(t, mw.WriteField("email", "al@x.com"))
	fw, err := mw.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("img-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/students", &body)
	r.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t,
		`{"id":1,"name":"Al","email":"al@x.com","photo":"http://localhost:8080/api/v1/students/photo/ab12.png"}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_CreateStudent_InvalidEmail(t *testing.T) {
	t.Parallel()

	e, _, _, _ := newTestEcho(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Al"))
	require.NoError(t, mw.WriteField("email", "not-an-email"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/students", &body)
	r.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetStudent(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		e, studentSvc, _, _ := newTestEcho(t)
		studentSvc.EXPECT().
			Get(context.Background(), 1).
			Return(model.Student{ID: 1, Name: "Al", Email: "al@x.com"}, nil)

		r := httptest.NewRequest(http.MethodGet, "/students/1", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"id":1,"name":"Al","email":"al@x.com","photo":null}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		e, studentSvc, _, _ := newTestEcho(t)
		studentSvc.EXPECT().
			Get(context.Background(), 42).
			Return(model.Student{}, errors.Wrap(errs.ErrNotFound, "student"))

		r := httptest.NewRequest(http.MethodGet, "/students/42", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, `{"message":"student: not found"}`, strings.Trim(w.Body.String(), "\n"))
	})
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()

	t.Run("rented book conflicts", func(t *testing.T) {
		t.Parallel()
		e, _, bookSvc, _ := newTestEcho(t)
		bookSvc.EXPECT().
			Delete(context.Background(), 2).
			Return(errors.Wrap(errs.ErrConflict, "cannot delete book that is currently rented"))

		r := httptest.NewRequest(http.MethodDelete, "/books/2", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, `{"message":"cannot delete book that is currently rented: conflict"}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		e, _, bookSvc, _ := newTestEcho(t)
		bookSvc.EXPECT().Delete(context.Background(), 2).Return(nil)

		r := httptest.NewRequest(http.MethodDelete, "/books/2", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"message":"book deleted successfully"}`, strings.Trim(w.Body.String(), "\n"))
	})
}

func TestHandler_DeleteOrder(t *testing.T) {
	t.Parallel()

	e, _, _, rentalSvc := newTestEcho(t)
	rentalSvc.EXPECT().DeleteOrder(context.Background(), 7).Return(nil)

	r := httptest.NewRequest(http.MethodDelete, "/orders/7", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"message":"order deleted successfully"}`, strings.Trim(w.Body.String(), "\n"))
}
