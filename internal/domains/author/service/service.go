package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/query"
)

// Service định nghĩa business logic cho authors.
// FullName/Slug được service tính lại tường minh (RebuildDerived) mỗi khi
// một name field thay đổi; repository không có hook nào tự làm việc này.
type Service interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	FindAll(ctx context.Context, f query.Filter) (query.Page[*model.Author], error)
	FindOne(ctx context.Context, id int64) (*model.Author, error)
	FindBySlug(ctx context.Context, slug string) (*model.Author, error)
	Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error)
	Remove(ctx context.Context, id int64) (*model.Author, error)
	ExportAll(ctx context.Context, f query.Filter) ([]*model.Author, error)
}

type authorService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &authorService{repo: repo}
}

// optional chuẩn hoá optional string: "" hoặc toàn space → nil
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// ========================================
// CREATE
// ========================================

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	a := &model.Author{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		MiddleName: optional(req.MiddleName),
		Bio:        req.Bio,
	}
	a.RebuildDerived()
	if a.Slug == "" {
		return nil, model.ErrEmptyDerivedSlug
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", created.ID).Str("slug", created.Slug).Msg("author created")
	return created, nil
}

// ========================================
// READ
// ========================================

func (s *authorService) FindAll(ctx context.Context, f query.Filter) (query.Page[*model.Author], error) {
	resolved, err := model.Schema.Resolve(f)
	if err != nil {
		return query.Page[*model.Author]{}, err
	}

	items, total, err := s.repo.List(ctx, resolved)
	if err != nil {
		return query.Page[*model.Author]{}, err
	}
	return query.NewPage(resolved, items, total), nil
}

func (s *authorService) FindOne(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) FindBySlug(ctx context.Context, slug string) (*model.Author, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *authorService) ExportAll(ctx context.Context, f query.Filter) ([]*model.Author, error) {
	f.Limit, f.Offset = query.MaxLimit, 0

	var all []*model.Author
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

func (s *authorService) Update(ctx context.Context, id int64, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	if req.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, func(a *model.Author) error {
		if req.FirstName != nil {
			a.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			a.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.MiddleName != nil {
			a.MiddleName = optional(req.MiddleName)
		}
		if req.Bio != nil {
			a.Bio = req.Bio
		}

		if req.TouchesName() {
			a.RebuildDerived()
			if a.Slug == "" {
				return model.ErrEmptyDerivedSlug
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", id).Msg("author updated")
	return updated, nil
}

// ========================================
// DELETE
// ========================================

func (s *authorService) Remove(ctx context.Context, id int64) (*model.Author, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("author_id", id).Msg("author removed")
	return removed, nil
}
