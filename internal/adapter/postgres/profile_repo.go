package postgres

import (
	"context"
	"database/sql"
	"errors"

	"promptpic/internal/domain"
)

// ProfileRepo implements the single-account profile port.
type ProfileRepo struct {
	db *DB
}

// NewProfileRepo creates the profile repository over db.
func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Save upserts the single device profile row.
func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO profile(singleton, id, username, credential_hash, display_name, profile_picture, email, bio, created_at)
		 VALUES(TRUE, $1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (singleton) DO UPDATE SET
		   id=EXCLUDED.id, username=EXCLUDED.username, credential_hash=EXCLUDED.credential_hash,
		   display_name=EXCLUDED.display_name, profile_picture=EXCLUDED.profile_picture,
		   email=EXCLUDED.email, bio=EXCLUDED.bio, created_at=EXCLUDED.created_at;`,
		p.ID, p.Username, p.CredentialHash, p.DisplayName, p.ProfilePicture, p.Email, p.Bio, p.CreatedAt,
	)
	return err
}

// Get returns the stored profile, or nil when none exists.
func (r *ProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT id, username, credential_hash, display_name, profile_picture, email, bio, created_at FROM profile;")

	var p domain.Profile
	err := row.Scan(&p.ID, &p.Username, &p.CredentialHash, &p.DisplayName, &p.ProfilePicture, &p.Email, &p.Bio, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Clear removes the stored profile.
func (r *ProfileRepo) Clear(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM profile;")
	return err
}
