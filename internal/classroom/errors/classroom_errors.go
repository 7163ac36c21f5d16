package classroomerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrClassroomNotFound = apperror.New(
		apperror.CodeNotFound,
		"classroom not found",
		http.StatusNotFound,
	)
	ErrInvalidTeacherID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid teacher id",
		http.StatusBadRequest,
	)
	ErrClassroomFull = apperror.New(
		apperror.CodeInvalidState,
		"classroom is at capacity",
		http.StatusBadRequest,
	)
	ErrNameTaken = apperror.New(
		apperror.CodeConflict,
		"classroom with the same name already exists",
		http.StatusConflict,
	)
)
