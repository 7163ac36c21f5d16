package activityerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrActivityNotFound = apperror.New(
		apperror.CodeNotFound,
		"activity not found",
		http.StatusNotFound,
	)
	ErrInvalidChildID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid child id",
		http.StatusBadRequest,
	)
	ErrInvalidActivityType = apperror.New(
		apperror.CodeInvalidInput,
		"activity type must be meal, nap, play, learning, outdoor or other",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"occurred_at must be an RFC3339 timestamp",
		http.StatusBadRequest,
	)
)
