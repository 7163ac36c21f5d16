package billingerrors

import (
	"net/http"

	"go-daycare/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_end must be on or after period_start",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDiscountKind = apperror.New(
		apperror.CodeInvalidInput,
		"discount kind must be percentage or fixed",
		http.StatusBadRequest,
	)
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeAlreadyProcessed,
		"invoice has already been paid",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid invoice status transition",
		http.StatusBadRequest,
	)
	ErrInvoiceNumberTaken = apperror.New(
		apperror.CodeConflict,
		"invoice number already exists",
		http.StatusConflict,
	)
	ErrPaymentMethodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"payment_method is required",
		http.StatusBadRequest,
	)
)
