package notification

import (
	"errors"
	"strings"

	notificationerrors "go-daycare/internal/notification/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notification_event" {
			return notificationerrors.ErrDuplicateNotification
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notification_event") {
		return notificationerrors.ErrDuplicateNotification
	}

	return err
}
