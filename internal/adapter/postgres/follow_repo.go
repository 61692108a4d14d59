package postgres

import (
	"context"
	"time"
)

// FollowRepo implements the follow-edge port.
type FollowRepo struct {
	db *DB
}

// NewFollowRepo creates the follow repository over db.
func NewFollowRepo(db *DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Add records a follow edge, reporting whether it was new.
func (r *FollowRepo) Add(ctx context.Context, follower, followee string) (bool, error) {
	res, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO follows(follower, followee, created_at) VALUES($1, $2, $3) ON CONFLICT DO NOTHING;",
		follower, followee, time.Now(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Remove deletes a follow edge, reporting whether it existed.
func (r *FollowRepo) Remove(ctx context.Context, follower, followee string) (bool, error) {
	res, err := r.db.sql.ExecContext(ctx,
		"DELETE FROM follows WHERE follower=$1 AND followee=$2;", follower, followee)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// List returns the usernames the follower follows.
func (r *FollowRepo) List(ctx context.Context, follower string) ([]string, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT followee FROM follows WHERE follower=$1 ORDER BY followee;", follower)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Contains reports whether the follow edge exists.
func (r *FollowRepo) Contains(ctx context.Context, follower, followee string) (bool, error) {
	var exists bool
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower=$1 AND followee=$2);", follower, followee).Scan(&exists)
	return exists, err
}

// DeleteByFollower drops the follower's entire follow list.
func (r *FollowRepo) DeleteByFollower(ctx context.Context, follower string) (int, error) {
	res, err := r.db.sql.ExecContext(ctx, "DELETE FROM follows WHERE follower=$1;", follower)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
