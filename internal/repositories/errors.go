package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// isUUID reports whether id can be compared against a UUID column without a cast error
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
