package sqlite

import (
	"errors"
	"strings"

	"github.com/Murilo211205/rede-social/internal/repository"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Columns reported by the driver for each unique index, mapped to the
// stable constraint identifiers callers match on. This is the only
// place driver error details are inspected.
var constraintByColumns = map[string]string{
	"users.username": repository.ConstraintUserUsername,
	"users.email":    repository.ConstraintUserEmail,
	"posts.slug":     repository.ConstraintPostSlug,
	"likes.user_id, likes.post_id":              repository.ConstraintPostLike,
	"likes.user_id, likes.comment_id":           repository.ConstraintCommentLike,
	"follows.follower_id, follows.following_id": repository.ConstraintFollowPair,
}

// translateConflict converts a driver unique-constraint violation into a
// repository.ConflictError. Any other error is returned unchanged.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	code := se.Code()
	if code != sqlite3.SQLITE_CONSTRAINT_UNIQUE && code != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return err
	}

	// The driver reports "UNIQUE constraint failed: <table.col, ...>".
	msg := se.Error()
	for columns, constraint := range constraintByColumns {
		if strings.Contains(msg, columns) {
			return &repository.ConflictError{Constraint: constraint}
		}
	}
	return &repository.ConflictError{Constraint: ""}
}
