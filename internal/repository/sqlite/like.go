package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
	"github.com/rs/xid"
)

var _ repository.LikeRepository = (*LikeRepo)(nil)

// LikeRepo implements repository.LikeRepository on SQLite.
type LikeRepo struct {
	conn *sql.DB
}

func NewLikeRepo(db *DB) *LikeRepo {
	return &LikeRepo{conn: db.conn}
}

// Create inserts a like for either a post or a comment. Liking the same
// target twice comes back as repository.ConflictError.
func (r *LikeRepo) Create(ctx context.Context, like *model.Like) error {
	like.ID = xid.New().String()
	like.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO likes (id, user_id, post_id, comment_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		like.ID, like.UserID, like.PostID, like.CommentID, like.CreatedAt,
	)
	if err != nil {
		if err = translateConflict(err); repository.IsConflict(err, "") {
			return err
		}
		return fmt.Errorf("sqlite: creating like: %w", err)
	}
	return nil
}

func (r *LikeRepo) DeleteForPost(ctx context.Context, userID, postID string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post like: %w", err)
	}
	return checkAffected(result, "like")
}

func (r *LikeRepo) DeleteForComment(ctx context.Context, userID, commentID string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND comment_id = ?`, userID, commentID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment like: %w", err)
	}
	return checkAffected(result, "like")
}

func (r *LikeRepo) ExistsForPost(ctx context.Context, userID, postID string) (bool, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND post_id = ?`,
		userID, postID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking post like: %w", err)
	}
	return n > 0, nil
}

func (r *LikeRepo) ExistsForComment(ctx context.Context, userID, commentID string) (bool, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND comment_id = ?`,
		userID, commentID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking comment like: %w", err)
	}
	return n > 0, nil
}

// checkAffected maps a zero-row write to NotFound.
func checkAffected(result sql.Result, resource string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(resource)
	}
	return nil
}
