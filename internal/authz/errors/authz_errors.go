package authzerrors

import (
	"fmt"
	"net/http"
	"strings"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrNoPrincipal = apperror.New(
		apperror.CodeUnauthorized,
		"authentication is required",
		http.StatusUnauthorized,
	)
	ErrNotYourChild = apperror.New(
		apperror.CodeForbidden,
		"parents may only access their own children",
		http.StatusForbidden,
	)
	ErrChildNotInClassroom = apperror.New(
		apperror.CodeForbidden,
		"employees may only access children in their assigned classroom",
		http.StatusForbidden,
	)
	ErrNotAssignedClassroom = apperror.New(
		apperror.CodeForbidden,
		"employees may only access their assigned classroom",
		http.StatusForbidden,
	)
	ErrNotYourInvoice = apperror.New(
		apperror.CodeForbidden,
		"parents may only access their own payments",
		http.StatusForbidden,
	)
)

// ForbiddenForRoles names the roles that would have been accepted, so every
// denial tells the caller what was required.
func ForbiddenForRoles(roles []string) *apperror.AppError {
	return apperror.New(
		apperror.CodeForbidden,
		fmt.Sprintf("access requires one of the roles: %s", strings.Join(roles, ", ")),
		http.StatusForbidden,
	)
}
