package medicalerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrAlertNotFound = apperror.New(
		apperror.CodeNotFound,
		"medical alert not found",
		http.StatusNotFound,
	)
	ErrInvalidChildID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid child id",
		http.StatusBadRequest,
	)
	ErrInvalidAlertType = apperror.New(
		apperror.CodeInvalidInput,
		"alert type must be allergy, medication or condition",
		http.StatusBadRequest,
	)
	ErrInvalidSeverity = apperror.New(
		apperror.CodeInvalidInput,
		"severity must be low, medium, high or critical",
		http.StatusBadRequest,
	)
	ErrDuplicateAlert = apperror.New(
		apperror.CodeConflict,
		"an identical medical alert already exists for this child",
		http.StatusConflict,
	)
)
