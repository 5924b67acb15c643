package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// uniqueViolation is the postgres error code for a unique constraint breach;
// duplicate-insert races resolve to one winner and one of these.
const uniqueViolation = pq.ErrorCode("23505")

// foreignKeyViolation is the postgres error code for a reference to a row
// that does not exist.
const foreignKeyViolation = pq.ErrorCode("23503")

// violatesUnique reports whether err is a unique violation on the named constraint.
// An empty constraint matches any unique violation.
func violatesUnique(err error, constraint string) bool {
	return violatesConstraint(err, uniqueViolation, constraint)
}

// violatesForeignKey reports whether err is a foreign key violation on the
// named constraint. An empty constraint matches any foreign key violation.
func violatesForeignKey(err error, constraint string) bool {
	return violatesConstraint(err, foreignKeyViolation, constraint)
}

func violatesConstraint(err error, code pq.ErrorCode, constraint string) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	if !ok || pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// trapNoRowsErr maps psql "no rows" err to the given sentinel.
func trapNoRowsErr(err, sentinel error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return sentinel
	}
	return errors.Wrap(err, msg)
}
