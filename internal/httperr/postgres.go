package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgInvalidTextFormat   = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// IsNotFound also covers malformed uuid keys, which can never match a row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || pgCode(err) == pgInvalidTextFormat
}
