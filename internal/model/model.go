package model

type Student struct {
	ID    int     `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Email string  `json:"email" db:"email"`
	Photo *string `json:"photo" db:"photo"`
}

type Book struct {
	ID         int     `json:"id" db:"id"`
	Title      string  `json:"title" db:"title"`
	Author     string  `json:"author" db:"author"`
	CoverImage *string `json:"cover_image" db:"cover_image"`
}

type Order struct {
	ID         int      `json:"id" db:"id"`
	StudentID  int      `json:"student_id" db:"student_id"`
	BookID     int      `json:"book_id" db:"book_id"`
	RentPerDay int      `json:"rent_per_day" db:"rent_per_day"`
	RentedDate Date     `json:"rented_date" db:"rented_date"`
	ReturnDate NullDate `json:"return_date" db:"return_date"`
	TotalDays  int      `json:"total_days" db:"total_days"`
	TotalRent  int      `json:"total_rent" db:"total_rent"`
	Student    Student  `json:"student" db:"student"`
	Book       Book     `json:"book" db:"book"`
}

// Returned reports whether the order has been closed with a return date.
func (o Order) Returned() bool {
	return o.ReturnDate.Valid
}

type CreateStudentRequest struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
}

type UpdateStudentRequest struct {
	Name  string `form:"name"`
	Email string `form:"email" validate:"omitempty,email"`
}

type CreateBookRequest struct {
	Title  string `form:"title" validate:"required"`
	Author string `form:"author" validate:"required"`
}

type UpdateBookRequest struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

type CreateOrderRequest struct {
	StudentID int `json:"student_id" validate:"required,gt=0"`
	BookID    int `json:"book_id" validate:"required,gt=0"`
}

// UpdateOrderRequest reassigns both references of an order.
type UpdateOrderRequest struct {
	StudentID int `json:"student_id" validate:"required,gt=0"`
	BookID    int `json:"book_id" validate:"required,gt=0"`
}
