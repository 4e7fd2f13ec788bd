package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fa-helper/internal/domain"
	"fa-helper/internal/slug"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no profile matches the lookup key.
var ErrNotFound = errors.New("profile not found")

type ProfileRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProfileRepository(sqlDB *sql.DB, logger zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const profileColumns = `puuid, name, game_name, tag_line, description, contact,
	qualities, roles, vods, riot, created_at, updated_at`

// Upsert inserts or replaces the profile keyed by puuid in one atomic
// statement. Last write wins for concurrent edits of the same puuid.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	qualities, err := json.Marshal(emptyIfNil(p.Qualities))
	if err != nil {
		return fmt.Errorf("failed to encode qualities: %w", err)
	}
	roles, err := json.Marshal(emptyIfNil(p.Roles))
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	vodList := p.VODs
	if vodList == nil {
		vodList = []domain.VOD{}
	}
	vods, err := json.Marshal(vodList)
	if err != nil {
		return fmt.Errorf("failed to encode vods: %w", err)
	}
	var riot []byte
	if p.Riot != nil {
		riot, err = json.Marshal(p.Riot)
		if err != nil {
			return fmt.Errorf("failed to encode riot snapshot: %w", err)
		}
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (puuid, name, slug, game_name, tag_line, description, contact,
			qualities, roles, vods, riot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			description = excluded.description,
			contact = excluded.contact,
			qualities = excluded.qualities,
			roles = excluded.roles,
			vods = excluded.vods,
			riot = excluded.riot,
			updated_at = excluded.updated_at`,
		p.PUUID, p.Name, slug.Make(p.Name), p.GameName, p.TagLine, p.Description, p.Contact,
		string(qualities), string(roles), string(vods), nullable(riot), now, now)
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", p.PUUID).Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Info().Str("puuid", p.PUUID).Str("name", p.Name).Msg("profile upserted")
	return nil
}

// List returns all profiles, most recently modified first.
func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) GetBySlug(ctx context.Context, s string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE slug = ? LIMIT 1`, s)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *ProfileRepository) GetByPUUID(ctx context.Context, puuid string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE puuid = ?`, puuid)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Delete removes one profile. Deleting an absent puuid is a no-op, not an
// error.
func (r *ProfileRepository) Delete(ctx context.Context, puuid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE puuid = ?`, puuid)
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to delete profile")
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	affected, _ := res.RowsAffected()
	r.logger.Info().Str("puuid", puuid).Int64("rows", affected).Msg("profile deleted")
	return nil
}

func (r *ProfileRepository) DeleteAll(ctx context.Context) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all profiles")
		return fmt.Errorf("failed to delete all profiles: %w", err)
	}
	affected, _ := res.RowsAffected()
	r.logger.Warn().Int64("rows", affected).Msg("all profiles deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var qualities, roles, vods string
	var riot sql.NullString
	err := row.Scan(&p.PUUID, &p.Name, &p.GameName, &p.TagLine, &p.Description, &p.Contact,
		&qualities, &roles, &vods, &riot, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(qualities), &p.Qualities); err != nil {
		return nil, fmt.Errorf("failed to decode qualities: %w", err)
	}
	if err := json.Unmarshal([]byte(roles), &p.Roles); err != nil {
		return nil, fmt.Errorf("failed to decode roles: %w", err)
	}
	if err := json.Unmarshal([]byte(vods), &p.VODs); err != nil {
		return nil, fmt.Errorf("failed to decode vods: %w", err)
	}
	if riot.Valid && riot.String != "" {
		p.Riot = &domain.RiotSnapshot{}
		if err := json.Unmarshal([]byte(riot.String), p.Riot); err != nil {
			return nil, fmt.Errorf("failed to decode riot snapshot: %w", err)
		}
	}
	return &p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
