package classroom

import (
	"errors"
	"strings"

	classroomerrors "go-daycare/internal/classroom/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return classroomerrors.ErrNameTaken
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return classroomerrors.ErrNameTaken
	}

	return err
}
