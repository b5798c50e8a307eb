package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/model"
	"github.com/muhammadjayadi/larastore-management/internal/repository"
	"github.com/muhammadjayadi/larastore-management/internal/storage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// PerPage is the fixed page size of every listing.
const PerPage = 10

// CategoryService implements the category back office: keyword listing,
// create/update with image attachment and slug derivation, and the full
// trash → restore / permanent-delete state machine.
//
// Every mutating call takes the acting user explicitly; there is no ambient
// "current user" lookup below the handler layer.
type CategoryService interface {
	List(ctx context.Context, keyword string, page int) (*dto.CategoryPage, error)
	Create(ctx context.Context, actor uuid.UUID, req dto.CreateCategoryRequest, image *multipart.FileHeader) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, req dto.UpdateCategoryRequest, image *multipart.FileHeader) (*dto.CategoryResponse, error)
	Destroy(ctx context.Context, id uuid.UUID) error
	Trash(ctx context.Context, page int) (*dto.CategoryPage, error)
	Restore(ctx context.Context, id uuid.UUID) error
	DeletePermanent(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, keyword string) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	repo    repository.CategoryRepository
	uploads storage.Store
}

func NewCategoryService(repo repository.CategoryRepository, uploads storage.Store) CategoryService {
	return &categoryService{repo: repo, uploads: uploads}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     c.Image,
		CreatedBy: c.CreatedBy,
		UpdatedBy: c.UpdatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		resp.DeletedAt = &t
	}
	return resp
}

func mapCategoryPage(list []model.Category, page int, total int64) *dto.CategoryPage {
	data := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		data = append(data, mapCategory(c))
	}
	return &dto.CategoryPage{Data: data, Meta: dto.NewPageMeta(page, PerPage, total)}
}

func (s *categoryService) List(ctx context.Context, keyword string, page int) (*dto.CategoryPage, error) {
	if page < 1 {
		page = 1
	}
	list, total, err := s.repo.List(ctx, keyword, page, PerPage)
	if err != nil {
		return nil, err
	}
	return mapCategoryPage(list, page, total), nil
}

func (s *categoryService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateCategoryRequest, image *multipart.FileHeader) (*dto.CategoryResponse, error) {
	c := &model.Category{
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		CreatedBy: actor,
	}

	// Stored before the record; a failure between the two strands the file
	// until the janitor reclaims it.
	if image != nil {
		path, err := s.uploads.Save(image, storage.FolderCategoryImages)
		if err != nil {
			return nil, err
		}
		c.Image = &path
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, req dto.UpdateCategoryRequest, image *multipart.FileHeader) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	// The submitted slug is only validated for uniqueness; what gets persisted
	// is re-derived from the name below.
	taken, err := s.repo.SlugTaken(ctx, req.Slug, c.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	c.Name = req.Name
	if image != nil {
		if c.Image != nil && s.uploads.Exists(*c.Image) {
			_ = s.uploads.Delete(*c.Image)
		}
		path, err := s.uploads.Save(image, storage.FolderCategoryImages)
		if err != nil {
			return nil, err
		}
		c.Image = &path
	}
	c.UpdatedBy = &actor
	c.Slug = slug.Make(req.Name)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCategory(*c)
	return &resp, nil
}

func (s *categoryService) Destroy(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *categoryService) Trash(ctx context.Context, page int) (*dto.CategoryPage, error) {
	if page < 1 {
		page = 1
	}
	list, total, err := s.repo.ListTrashed(ctx, page, PerPage)
	if err != nil {
		return nil, err
	}
	return mapCategoryPage(list, page, total), nil
}

func (s *categoryService) Restore(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByIDWithTrashed(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if !c.Trashed() {
		return ErrNotInTrash
	}
	return s.repo.Restore(ctx, id)
}

func (s *categoryService) DeletePermanent(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByIDWithTrashed(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if !c.Trashed() {
		return ErrPermanentDeleteActive
	}
	return s.repo.DeletePermanent(ctx, id)
}

func (s *categoryService) Search(ctx context.Context, keyword string) ([]dto.CategoryResponse, error) {
	list, err := s.repo.SearchByName(ctx, keyword)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}
