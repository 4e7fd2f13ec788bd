package service

import (
	"context"
	"errors"
	"fmt"

	"fa-helper/internal/constants"
	"fa-helper/internal/domain"
	"fa-helper/internal/repository"

	"github.com/rs/zerolog"
)

// ErrValidation marks request-payload problems the handler maps to a 400.
var ErrValidation = errors.New("validation error")

type ProfileService struct {
	repo   *repository.ProfileRepository
	logger zerolog.Logger
}

func NewProfileService(repo *repository.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// List returns lightweight summaries for the list view, most recently
// modified first.
func (s *ProfileService) List(ctx context.Context) ([]domain.ProfileSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, p.Summary(constants.SummaryMatchLimit))
	}
	return summaries, nil
}

func (s *ProfileService) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.GetBySlug(ctx, slug)
}

func (s *ProfileService) GetByPUUID(ctx context.Context, puuid string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.GetByPUUID(ctx, puuid)
}

// Upsert validates and normalizes the payload, then writes it. Existing
// records with the same puuid are replaced.
func (s *ProfileService) Upsert(ctx context.Context, p *domain.Profile) error {
	if p == nil || p.PUUID == "" {
		return fmt.Errorf("%w: puuid is required", ErrValidation)
	}
	if p.Name == "" {
		p.Name = p.GameName
		if p.TagLine != "" {
			p.Name = p.GameName + "#" + p.TagLine
		}
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := normalizeQualities(p); err != nil {
		return err
	}
	if err := normalizeRoles(p); err != nil {
		return err
	}
	if err := normalizeVODs(p); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Upsert(ctx, p)
}

func (s *ProfileService) Delete(ctx context.Context, puuid string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Delete(ctx, puuid)
}

func (s *ProfileService) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.DeleteAll(ctx)
}

// normalizeQualities rejects duplicate entries, comparing case-sensitively,
// and preserves insertion order.
func normalizeQualities(p *domain.Profile) error {
	seen := make(map[string]struct{}, len(p.Qualities))
	for _, q := range p.Qualities {
		if q == "" {
			return fmt.Errorf("%w: empty quality", ErrValidation)
		}
		if _, ok := seen[q]; ok {
			return fmt.Errorf("%w: duplicate quality %q", ErrValidation, q)
		}
		seen[q] = struct{}{}
	}
	return nil
}

// normalizeRoles maps labels onto the canonical vocabulary and rejects
// unknown ones.
func normalizeRoles(p *domain.Profile) error {
	seen := make(map[string]struct{}, len(p.Roles))
	normalized := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		role := domain.NormalizeRole(r)
		if role == "" {
			return fmt.Errorf("%w: unknown role %q", ErrValidation, r)
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		normalized = append(normalized, role)
	}
	p.Roles = normalized
	return nil
}

// normalizeVODs derives missing ids and thumbnails from the URL.
func normalizeVODs(p *domain.Profile) error {
	for i := range p.VODs {
		v := &p.VODs[i]
		if v.ID == "" {
			v.ID = domain.ExtractVideoID(v.URL)
		}
		if v.ID == "" {
			return fmt.Errorf("%w: unrecognized vod url %q", ErrValidation, v.URL)
		}
		if v.Thumbnail == "" {
			v.Thumbnail = domain.VideoThumbnail(v.ID)
		}
	}
	return nil
}
