package billing

import (
	"errors"
	"strings"

	billingerrors "go-daycare/internal/billing/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError surfaces the invoice-number unique index as a conflict.
// The index is the serialization backstop for the sequence counter: if two
// creations ever race to the same number, one write fails here and the run
// can be retried.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_invoice_number" {
			return billingerrors.ErrInvoiceNumberTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_invoice_number") {
		return billingerrors.ErrInvoiceNumberTaken
	}

	return err
}
