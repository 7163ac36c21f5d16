package childerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrChildNotFound = apperror.New(
		apperror.CodeNotFound,
		"child not found",
		http.StatusNotFound,
	)
	ErrInvalidParentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid parent id",
		http.StatusBadRequest,
	)
	ErrInvalidClassroomID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid classroom id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrChildInactive = apperror.New(
		apperror.CodeInvalidState,
		"child is not enrolled",
		http.StatusBadRequest,
	)
)
