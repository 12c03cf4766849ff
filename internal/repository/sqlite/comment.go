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

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo implements repository.CommentRepository on SQLite.
type CommentRepo struct {
	conn *sql.DB
}

func NewCommentRepo(db *DB) *CommentRepo {
	return &CommentRepo{conn: db.conn}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.parent_comment_id, c.content,
	       c.likes_count, c.created_at,
	       u.id, u.username, u.bio, u.avatar_url, u.created_at
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	var author model.Profile
	err := row.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.ParentCommentID, &c.Content,
		&c.LikesCount, &c.CreatedAt,
		&author.ID, &author.Username, &author.Bio, &author.AvatarURL, &author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Author = &author
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, user_id, parent_comment_id, content, likes_count, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		comment.ID, comment.PostID, comment.UserID, comment.ParentCommentID,
		comment.Content, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	row := r.conn.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment")
		}
		return nil, fmt.Errorf("sqlite: getting comment %s: %w", id, err)
	}
	return c, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID string, sort string) ([]model.Comment, error) {
	order := "ORDER BY c.created_at ASC"
	switch sort {
	case "popular":
		order = "ORDER BY c.likes_count DESC, c.created_at ASC"
	case "recent":
		order = "ORDER BY c.created_at DESC"
	}

	rows, err := r.conn.QueryContext(ctx,
		commentSelect+` WHERE c.post_id = ? `+order, postID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for post %s: %w", postID, err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, 16)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("comment")
	}
	return nil
}

func (r *CommentRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE comments SET likes_count = MAX(0, likes_count + ?) WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adjusting likes for comment %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("comment")
	}
	return nil
}
