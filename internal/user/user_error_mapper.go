package user

import (
	"errors"
	"strings"

	usererrors "go-daycare/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrUserAlreadyExists
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return usererrors.ErrUserAlreadyExists
	}

	return err
}
