// Package services contains the application services behind the content API:
// user authentication, content CRUD, and media upload URLs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/freelancework02/welfare-admin/internal/common"
	"github.com/freelancework02/welfare-admin/internal/dbx"
	"github.com/freelancework02/welfare-admin/internal/server/auth"
	"github.com/freelancework02/welfare-admin/internal/server/config"
	"github.com/freelancework02/welfare-admin/internal/server/models"
	"github.com/freelancework02/welfare-admin/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: m, config: cfg}
}

// Login verifies the credentials and, on success, returns the user profile
// together with a signed bearer token. Unknown user and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Profile, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidLoginPassword
		}
		return nil, "", fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrorInvalidLoginPassword
	}

	token, err := auth.GenerateToken(user.ID, user.Role, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}

	return user.Profile(), token, nil
}

// Register creates a new editor account with a bcrypt-hashed password.
// The uniqueness check and the insert run in one transaction; a taken
// username maps to common.ErrorLoginAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, displayName, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByLogin(ctx, username); err == nil {
			return common.ErrorLoginAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Bootstrap provisions the initial admin account on startup when the
// configured admin username does not exist yet. A blank admin password
// disables provisioning.
func (s *UserService) Bootstrap(ctx context.Context) error {
	if s.config.AdminUser == "" || s.config.AdminPassword == "" {
		return nil
	}

	_, err := s.repomanager.Users(s.db).GetByLogin(ctx, s.config.AdminUser)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error searching admin user: %w", err)
	}

	if _, err := s.Register(ctx, s.config.AdminUser, s.config.AdminPassword, "Administrator", "admin"); err != nil {
		// A concurrent start may have won the race; the account exists.
		if errors.Is(err, common.ErrorLoginAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}

// GetProfile loads the profile for the given user id. A missing user maps
// to common.ErrorUnauthorized: the token refers to an account that no
// longer exists.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	return user.Profile(), nil
}
