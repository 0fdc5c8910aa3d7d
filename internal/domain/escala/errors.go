package escala

import "errors"

// Escala domain errors
var (
	ErrInvalidDate     = errors.New("date is not in a recognized format")
	ErrStudentNotFound = errors.New("student not listed on any escala")
)
