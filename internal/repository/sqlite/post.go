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

var _ repository.PostRepository = (*PostRepo)(nil)

// PostRepo implements repository.PostRepository on SQLite.
type PostRepo struct {
	conn *sql.DB
}

func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{conn: db.conn}
}

// postSelect joins the author so lists and single fetches return posts
// ready to serialize without extra queries.
const postSelect = `
	SELECT p.id, p.user_id, p.title, p.slug, p.content, p.likes_count,
	       p.created_at, p.updated_at,
	       u.id, u.username, u.bio, u.avatar_url, u.created_at
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	var p model.Post
	var author model.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Content, &p.LikesCount,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Username, &author.Bio, &author.AvatarURL, &author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &author
	return &p, nil
}

// Create inserts a new post. A duplicate slug comes back as
// repository.ConflictError with ConstraintPostSlug.
func (r *PostRepo) Create(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO posts (id, user_id, title, slug, content, likes_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		post.ID, post.UserID, post.Title, post.Slug, post.Content,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if err = translateConflict(err); repository.IsConflict(err, "") {
			return err
		}
		return fmt.Errorf("sqlite: creating post: %w", err)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	row := r.conn.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post")
		}
		return nil, fmt.Errorf("sqlite: getting post %s: %w", id, err)
	}
	return p, nil
}

func orderClause(sort string) string {
	switch sort {
	case "popular":
		return "ORDER BY p.likes_count DESC, p.created_at DESC"
	case "oldest":
		return "ORDER BY p.created_at ASC"
	default:
		return "ORDER BY p.created_at DESC"
	}
}

func (r *PostRepo) List(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryContext(ctx,
		postSelect+` `+orderClause(opts.Sort)+` LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows, limit)
}

func (r *PostRepo) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Post, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryContext(ctx,
		postSelect+` WHERE p.user_id = ? `+orderClause(opts.Sort)+` LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectPosts(rows, limit)
}

func (r *PostRepo) Search(ctx context.Context, query string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"

	rows, err := r.conn.QueryContext(ctx,
		postSelect+` WHERE p.title LIKE ? OR p.content LIKE ?
		 ORDER BY p.created_at DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows, limit)
}

func collectPosts(rows *sql.Rows, capacity int) ([]model.Post, error) {
	posts := make([]model.Post, 0, capacity)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepo) Update(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE posts SET title = ?, slug = ?, content = ?, updated_at = ? WHERE id = ?`,
		post.Title, post.Slug, post.Content, post.UpdatedAt, post.ID,
	)
	if err != nil {
		if err = translateConflict(err); repository.IsConflict(err, "") {
			return err
		}
		return fmt.Errorf("sqlite: updating post %s: %w", post.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post")
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post")
	}
	return nil
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting posts: %w", err)
	}
	return n, nil
}

func (r *PostRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting posts for user %s: %w", userID, err)
	}
	return n, nil
}

// AdjustLikes shifts likes_count by delta, never below zero.
func (r *PostRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE posts SET likes_count = MAX(0, likes_count + ?) WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adjusting likes for post %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post")
	}
	return nil
}
