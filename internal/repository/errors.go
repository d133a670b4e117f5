package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oggyb/muzz-match/internal/matching"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlDeadlock       = 1213

	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// classify tags errors caused by a concurrent writer on the same rows with
// matching.ErrRaceLost. Everything else is returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isRaceLost(err) {
		return fmt.Errorf("%w: %w", matching.ErrRaceLost, err)
	}
	return err
}

func isRaceLost(err error) bool {
	// gorm translates unique violations for every dialect when TranslateError is set
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry || myErr.Number == mysqlDeadlock
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
			return true
		}
	}

	return false
}
