package repository

import (
	"context"

	"github.com/muhammadjayadi/larastore-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for Category.
// Find* methods exclude soft-deleted rows unless the name says otherwise.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByIDWithTrashed(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	List(ctx context.Context, keyword string, page, perPage int) ([]model.Category, int64, error)
	ListTrashed(ctx context.Context, page, perPage int) ([]model.Category, int64, error)
	SearchByName(ctx context.Context, keyword string) ([]model.Category, error)
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	DeletePermanent(ctx context.Context, id uuid.UUID) error
	AllImagePaths(ctx context.Context) ([]string, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindByIDWithTrashed(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Unscoped().First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) List(ctx context.Context, keyword string, page, perPage int) ([]model.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Category
	err := q.Order("created_at desc").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&list).Error
	return list, total, err
}

func (r *categoryRepo) ListTrashed(ctx context.Context, page, perPage int) ([]model.Category, int64, error) {
	q := r.db.WithContext(ctx).Unscoped().
		Model(&model.Category{}).
		Where("deleted_at IS NOT NULL")

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Category
	err := q.Order("deleted_at desc").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&list).Error
	return list, total, err
}

// SearchByName backs the live-search endpoint; no pagination by design.
func (r *categoryRepo) SearchByName(ctx context.Context, keyword string) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+keyword+"%").
		Order("name asc").
		Find(&list).Error
	return list, err
}

// SlugTaken checks slug uniqueness among non-deleted categories, ignoring the
// row identified by exclude.
func (r *categoryRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("slug = ? AND id <> ?", slug, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Category{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *categoryRepo) DeletePermanent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Category{}, "id = ?", id).Error
}

// AllImagePaths returns every stored image path, trashed rows included.
// Used by the upload janitor to decide which files are still referenced.
func (r *categoryRepo) AllImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Category{}).
		Where("image IS NOT NULL").
		Pluck("image", &paths).Error
	return paths, err
}
