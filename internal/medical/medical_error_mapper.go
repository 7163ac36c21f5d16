package medical

import (
	"errors"
	"strings"

	medicalerrors "go-daycare/internal/medical/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_medical_alert" {
			return medicalerrors.ErrDuplicateAlert
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_medical_alert") {
		return medicalerrors.ErrDuplicateAlert
	}

	return err
}
