package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"promptpic/internal/domain"
)

// Insert stores a new post with its likes and comments.
func (d *DB) Insert(ctx context.Context, p *domain.Post) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO posts(id, photo, caption, prompt_id, created_at, author_username, author_display_name, like_count) VALUES($1, $2, $3, $4, $5, $6, $7, $8);",
		p.ID, p.Photo, p.Caption, p.PromptID, p.CreatedAt, p.Author.Username, p.Author.DisplayName, p.LikeCount,
	)
	if err != nil {
		return err
	}
	for _, u := range p.LikedBy {
		if _, err := tx.ExecContext(ctx, "INSERT INTO post_likes(post_id, username) VALUES($1, $2);", p.ID, u); err != nil {
			return err
		}
	}
	for _, c := range p.Comments {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO comments(id, post_id, body, author_username, author_display_name, created_at) VALUES($1, $2, $3, $4, $5, $6);",
			c.ID, p.ID, c.Text, c.Author.Username, c.Author.DisplayName, c.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns a post with its likes and comments, or nil.
func (d *DB) Get(ctx context.Context, id string) (*domain.Post, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, photo, caption, prompt_id, created_at, author_username, author_display_name, like_count FROM posts WHERE id=$1;", id)
	return d.scanPost(ctx, row)
}

// List returns all posts, most recent first.
func (d *DB) List(ctx context.Context) ([]domain.Post, error) {
	return d.listWhere(ctx,
		"SELECT id, photo, caption, prompt_id, created_at, author_username, author_display_name, like_count FROM posts ORDER BY created_at DESC;")
}

// ListByAuthor returns the author's posts, most recent first.
func (d *DB) ListByAuthor(ctx context.Context, username string) ([]domain.Post, error) {
	return d.listWhere(ctx,
		"SELECT id, photo, caption, prompt_id, created_at, author_username, author_display_name, like_count FROM posts WHERE author_username=$1 ORDER BY created_at DESC;",
		username)
}

// ForLocalDay returns the author's post for a local calendar day, or nil.
func (d *DB) ForLocalDay(ctx context.Context, username, localDay string) (*domain.Post, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	row := d.sql.QueryRowContext(ctx,
		"SELECT id, photo, caption, prompt_id, created_at, author_username, author_display_name, like_count FROM posts WHERE author_username=$1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at DESC LIMIT 1;",
		username, dayStart, dayEnd,
	)
	return d.scanPost(ctx, row)
}

// Delete removes a post by id.
func (d *DB) Delete(ctx context.Context, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM posts WHERE id=$1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteByAuthor removes every post by the author.
func (d *DB) DeleteByAuthor(ctx context.Context, username string) (int, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM posts WHERE author_username=$1;", username)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// SetLike applies a like-state change computed by the service layer.
func (d *DB) SetLike(ctx context.Context, postID, username string, liked bool, likeCount int) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if liked {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO post_likes(post_id, username) VALUES($1, $2) ON CONFLICT DO NOTHING;", postID, username)
	} else {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM post_likes WHERE post_id=$1 AND username=$2;", postID, username)
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "UPDATE posts SET like_count=$1 WHERE id=$2;", likeCount, postID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("post not found")
	}
	return tx.Commit()
}

// AddComment appends a comment to a post.
func (d *DB) AddComment(ctx context.Context, postID string, c domain.Comment) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO comments(id, post_id, body, author_username, author_display_name, created_at) VALUES($1, $2, $3, $4, $5, $6);",
		c.ID, postID, c.Text, c.Author.Username, c.Author.DisplayName, c.CreatedAt,
	)
	return err
}

// CountByPrompt counts posts answering the given prompt.
func (d *DB) CountByPrompt(ctx context.Context, promptID int64) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE prompt_id=$1;", promptID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostRow(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.Photo, &p.Caption, &p.PromptID, &p.CreatedAt, &p.Author.Username, &p.Author.DisplayName, &p.LikeCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (d *DB) scanPost(ctx context.Context, row rowScanner) (*domain.Post, error) {
	p, err := scanPostRow(row)
	if err != nil || p == nil {
		return nil, err
	}
	if err := d.loadSocial(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *DB) listWhere(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := d.loadSocial(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// loadSocial fills a post's liked-by set and comments.
func (d *DB) loadSocial(ctx context.Context, p *domain.Post) error {
	likeRows, err := d.sql.QueryContext(ctx, "SELECT username FROM post_likes WHERE post_id=$1 ORDER BY username;", p.ID)
	if err != nil {
		return err
	}
	defer likeRows.Close()

	p.LikedBy = []string{}
	for likeRows.Next() {
		var u string
		if err := likeRows.Scan(&u); err != nil {
			return err
		}
		p.LikedBy = append(p.LikedBy, u)
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := d.sql.QueryContext(ctx,
		"SELECT id, body, author_username, author_display_name, created_at FROM comments WHERE post_id=$1 ORDER BY created_at;", p.ID)
	if err != nil {
		return err
	}
	defer commentRows.Close()

	p.Comments = []domain.Comment{}
	for commentRows.Next() {
		var c domain.Comment
		if err := commentRows.Scan(&c.ID, &c.Text, &c.Author.Username, &c.Author.DisplayName, &c.CreatedAt); err != nil {
			return err
		}
		p.Comments = append(p.Comments, c)
	}
	return commentRows.Err()
}
