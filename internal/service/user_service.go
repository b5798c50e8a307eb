package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/muhammadjayadi/larastore-management/internal/dto"
	"github.com/muhammadjayadi/larastore-management/internal/model"
	"github.com/muhammadjayadi/larastore-management/internal/repository"
	"github.com/muhammadjayadi/larastore-management/internal/storage"
	"github.com/muhammadjayadi/larastore-management/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// MailDispatcher enqueues outbound mail jobs. Satisfied by worker.Dispatcher.
type MailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

// UserService implements the user back office. Deleting a user soft-deletes
// the row; no trash/restore surface exists for users, so recovery is a
// storage-layer operation only.
type UserService interface {
	List(ctx context.Context, keyword, status string, page int) (*dto.UserPage, error)
	Create(ctx context.Context, req dto.CreateUserRequest, avatar *multipart.FileHeader) (*dto.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest, avatar *multipart.FileHeader) (*dto.UserResponse, error)
	Destroy(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo    repository.UserRepository
	uploads storage.Store
	mail    MailDispatcher
}

func NewUserService(repo repository.UserRepository, uploads storage.Store, mail MailDispatcher) UserService {
	return &userService{repo: repo, uploads: uploads, mail: mail}
}

func mapUser(u model.User) dto.UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Roles:     roles,
		Status:    u.Status,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// List filters by email keyword; the status filter only applies when a keyword
// is present; a status submitted alone filters nothing. That is the behavior
// the back office has always had, and clients depend on it.
func (s *userService) List(ctx context.Context, keyword, status string, page int) (*dto.UserPage, error) {
	if page < 1 {
		page = 1
	}
	var f repository.UserFilter
	if keyword != "" {
		f.EmailKeyword = keyword
		f.Status = status
	}

	list, total, err := s.repo.List(ctx, f, page, PerPage)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		data = append(data, mapUser(u))
	}
	return &dto.UserPage{Data: data, Meta: dto.NewPageMeta(page, PerPage, total)}, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest, avatar *multipart.FileHeader) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Roles:        req.Roles,
		Status:       model.StatusActive,
		PasswordHash: string(hash),
	}

	if avatar != nil {
		path, err := s.uploads.Save(avatar, storage.FolderAvatars)
		if err != nil {
			return nil, err
		}
		u.Avatar = &path
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	// Best effort: a failed enqueue never fails the request.
	if s.mail != nil && u.Email != "" {
		payload := worker.WelcomeEmailPayload{
			ToEmail: u.Email,
			Subject: "Welcome to the store back office",
			Body:    fmt.Sprintf("Hi %s,\n\nyour account %q has been created.", u.Name, u.Username),
		}
		if err := s.mail.EnqueueEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("welcome email enqueue failed")
		}
	}

	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest, avatar *multipart.FileHeader) (*dto.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Name = req.Name
	u.Username = req.Username
	u.Status = req.Status
	u.Roles = req.Roles
	u.Phone = req.Phone
	u.Address = req.Address
	u.Email = req.Email

	if avatar != nil {
		if u.Avatar != nil && s.uploads.Exists(*u.Avatar) {
			_ = s.uploads.Delete(*u.Avatar)
		}
		path, err := s.uploads.Save(avatar, storage.FolderAvatars)
		if err != nil {
			return nil, err
		}
		u.Avatar = &path
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := mapUser(*u)
	return &resp, nil
}

func (s *userService) Destroy(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
