// Package service holds the business rules of the rental system:
// entity uniqueness, referential deletion guards and the order lifecycle.
package service

import (
	"fmt"

	"github.com/Astemirdum/library-rental/internal/model"
)

func studentPhotoURL(base, filename string) string {
	return fmt.Sprintf("%s/api/v1/students/photo/%s", base, filename)
}

func bookCoverURL(base, filename string) string {
	return fmt.Sprintf("%s/api/v1/books/cover/%s", base, filename)
}

// resolveStudent projects the stored photo filename into a retrieval URL.
func resolveStudent(base string, st model.Student) model.Student {
	if st.Photo != nil {
		url := studentPhotoURL(base, *st.Photo)
		st.Photo = &url
	}
	return st
}

func resolveBook(base string, b model.Book) model.Book {
	if b.CoverImage != nil {
		url := bookCoverURL(base, *b.CoverImage)
		b.CoverImage = &url
	}
	return b
}

func resolveOrder(base string, o model.Order) model.Order {
	o.Student = resolveStudent(base, o.Student)
	o.Book = resolveBook(base, o.Book)
	return o
}
