package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
	"github.com/rs/xid"
)

var _ repository.FollowRepository = (*FollowRepo)(nil)

// FollowRepo implements repository.FollowRepository on SQLite.
type FollowRepo struct {
	conn *sql.DB
}

func NewFollowRepo(db *DB) *FollowRepo {
	return &FollowRepo{conn: db.conn}
}

// Create inserts a follow edge. Following the same user twice comes back
// as repository.ConflictError with ConstraintFollowPair.
func (r *FollowRepo) Create(ctx context.Context, follow *model.Follow) error {
	follow.ID = xid.New().String()
	follow.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO follows (id, follower_id, following_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		follow.ID, follow.FollowerID, follow.FollowingID, follow.CreatedAt,
	)
	if err != nil {
		if err = translateConflict(err); repository.IsConflict(err, "") {
			return err
		}
		return fmt.Errorf("sqlite: creating follow: %w", err)
	}
	return nil
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting follow: %w", err)
	}
	return checkAffected(result, "follow")
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking follow: %w", err)
	}
	return n > 0, nil
}

func (r *FollowRepo) Followers(ctx context.Context, userID string, limit int) ([]model.Profile, error) {
	return r.listProfiles(ctx,
		`SELECT u.id, u.username, u.bio, u.avatar_url, u.created_at
		 FROM follows f
		 JOIN users u ON u.id = f.follower_id
		 WHERE f.following_id = ?
		 ORDER BY f.created_at DESC
		 LIMIT ?`,
		userID, limit)
}

func (r *FollowRepo) Following(ctx context.Context, userID string, limit int) ([]model.Profile, error) {
	return r.listProfiles(ctx,
		`SELECT u.id, u.username, u.bio, u.avatar_url, u.created_at
		 FROM follows f
		 JOIN users u ON u.id = f.following_id
		 WHERE f.follower_id = ?
		 ORDER BY f.created_at DESC
		 LIMIT ?`,
		userID, limit)
}

func (r *FollowRepo) listProfiles(ctx context.Context, query, userID string, limit int) ([]model.Profile, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.conn.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing follow profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0, limit)
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Bio, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting followers: %w", err)
	}
	return n, nil
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting following: %w", err)
	}
	return n, nil
}
