package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/utils"
)

// Service định nghĩa business logic cho genres
type Service interface {
	Create(ctx context.Context, req *model.CreateGenreRequest) (*model.Genre, error)
	FindAll(ctx context.Context, f query.Filter) (query.Page[*model.Genre], error)
	FindOne(ctx context.Context, id int64) (*model.Genre, error)
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	Update(ctx context.Context, id int64, req *model.UpdateGenreRequest) (*model.Genre, error)
	Remove(ctx context.Context, id int64) error
	// ExportAll trả về mọi genre khớp filter (bỏ qua limit/offset)
	ExportAll(ctx context.Context, f query.Filter) ([]*model.Genre, error)
}

type genreService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &genreService{repo: repo}
}

// ========================================
// CREATE
// ========================================

func (s *genreService) Create(ctx context.Context, req *model.CreateGenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	g := &model.Genre{
		Name:        req.Name,
		Description: req.Description,
	}

	// Slug truyền vào được giữ nguyên, không thì derive từ name
	if req.Slug != nil {
		g.Slug = *req.Slug
	} else {
		g.Slug = utils.Slugify(req.Name)
		if g.Slug == "" {
			return nil, model.ErrEmptyDerivedSlug
		}
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("genre_id", created.ID).Str("slug", created.Slug).Msg("genre created")
	return created, nil
}

// ========================================
// READ
// ========================================

func (s *genreService) FindAll(ctx context.Context, f query.Filter) (query.Page[*model.Genre], error) {
	resolved, err := model.Schema.Resolve(f)
	if err != nil {
		return query.Page[*model.Genre]{}, err
	}

	items, total, err := s.repo.List(ctx, resolved)
	if err != nil {
		return query.Page[*model.Genre]{}, err
	}
	return query.NewPage(resolved, items, total), nil
}

func (s *genreService) FindOne(ctx context.Context, id int64) (*model.Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *genreService) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *genreService) ExportAll(ctx context.Context, f query.Filter) ([]*model.Genre, error) {
	f.Limit, f.Offset = query.MaxLimit, 0

	var all []*model.Genre
	for {
		page, err := s.FindAll(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) < f.Limit || int64(len(all)) >= page.Total {
			return all, nil
		}
		f.Offset += f.Limit
	}
}

// ========================================
// UPDATE
// ========================================

func (s *genreService) Update(ctx context.Context, id int64, req *model.UpdateGenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return existing, nil
	}

	merged := *existing
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = req.Description
	}

	switch {
	case req.Slug != nil:
		merged.Slug = *req.Slug
	case merged.Name != existing.Name:
		// Đổi name mà không truyền slug → regenerate
		merged.Slug = utils.Slugify(merged.Name)
		if merged.Slug == "" {
			return nil, model.ErrEmptyDerivedSlug
		}
	}

	return s.repo.Update(ctx, &merged)
}

// ========================================
// DELETE
// ========================================

func (s *genreService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("genre_id", id).Msg("genre removed")
	return nil
}
