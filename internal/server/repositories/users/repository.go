// Package users contains the persistence layer for editor accounts.
package users

import (
	"context"

	"github.com/freelancework02/welfare-admin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByLogin(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
