package notificationerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotYourNotification = apperror.New(
		apperror.CodeForbidden,
		"notification belongs to another user",
		http.StatusForbidden,
	)
	ErrDuplicateNotification = apperror.New(
		apperror.CodeConflict,
		"notification already recorded for this event",
		http.StatusConflict,
	)
)
