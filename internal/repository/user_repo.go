package repository

import (
	"context"

	"github.com/muhammadjayadi/larastore-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFilter narrows the user listing. An empty filter lists everything.
// The service layer decides which fields to fill; see its List for the
// keyword/status coupling inherited from the original back office.
type UserFilter struct {
	EmailKeyword string
	Status       string
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// FindByLogin matches username or email (case-insensitive email match),
	// active accounts only.
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	List(ctx context.Context, f UserFilter, page, perPage int) ([]model.User, int64, error)
	Update(ctx context.Context, u *model.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	AllAvatarPaths(ctx context.Context) ([]string, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email) = LOWER(?)) AND status = ?",
			login, login, model.StatusActive).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, f UserFilter, page, perPage int) ([]model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if f.EmailKeyword != "" {
		q = q.Where("email LIKE ?", "%"+f.EmailKeyword+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.User
	err := q.Order("created_at desc").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&list).Error
	return list, total, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

// AllAvatarPaths returns every stored avatar path, trashed rows included.
func (r *userRepo) AllAvatarPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Unscoped().Model(&model.User{}).
		Where("avatar IS NOT NULL").
		Pluck("avatar", &paths).Error
	return paths, err
}
