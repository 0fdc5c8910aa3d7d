package aluno

import "errors"

// Aluno domain errors
var (
	ErrAlunoNotFound = errors.New("student not found")
)
