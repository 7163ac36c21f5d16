package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-daycare/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError backs the application-level duplicate check with the
// uq_attendance_child_date unique index, so two concurrent check-ins for the
// same child and date cannot both succeed.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_child_date" {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_child_date") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}

	return err
}
