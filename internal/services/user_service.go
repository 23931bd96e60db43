// Package services – UserService
//
// This file implements the UserService, which manages dashboard accounts.
// Passwords are hashed with bcrypt at creation time and never leave the
// service in clear text; the domain model additionally excludes the hash
// from JSON. Service-level errors (e.g. ErrDuplicateUsername) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	// CreateUser inserts a new account row.
	CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error

	// GetUser fetches an account by ID.
	GetUser(ctx context.Context, db *gorm.DB, id int) (*domain.User, error)

	// GetUserByUsername fetches an account by its unique username.
	GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error)

	// ListUsers returns all accounts.
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
}

// gormUserRepo adapts the free repo functions to the UserRepo interface.
type gormUserRepo struct{}

func (gormUserRepo) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return repo.CreateUser(ctx, db, u)
}

func (gormUserRepo) GetUser(ctx context.Context, db *gorm.DB, id int) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

func (gormUserRepo) GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return repo.GetUserByUsername(ctx, db, username)
}

func (gormUserRepo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// UserService provides account-level operations. Password hashing happens
// here so that no caller ever persists a clear-text password.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo

	// BcryptCost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// NewUserService constructs a UserService backed by the GORM repository.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, Repo: gormUserRepo{}}
}

// Create hashes the password and inserts the account. The Password field of
// the input must carry the clear-text secret; it is replaced by the hash
// before the row is written. Returns ErrDuplicateUsername when the username
// is taken.
func (s *UserService) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
	if err != nil {
		return nil, err
	}
	u.Password = string(hash)

	if err := s.Repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return u, nil
}

// Get returns the account with the given ID, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByUsername returns the account with the given username, or ErrUserNotFound.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.Repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}

// CheckPassword reports whether the clear-text candidate matches the stored
// hash for the given username. It never reveals which of the two checks
// failed.
func (s *UserService) CheckPassword(ctx context.Context, username, candidate string) (*domain.User, bool) {
	u, err := s.Repo.GetUserByUsername(ctx, s.DB, username)
	if err != nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) != nil {
		return nil, false
	}
	return u, true
}
