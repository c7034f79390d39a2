// Package records contains the persistence layer for content documents.
// All collections share one table keyed by collection name, matching the
// collection-agnostic API contract.
package records

import (
	"context"

	"github.com/freelancework02/welfare-admin/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, collection string) ([]*models.Record, error)
	Get(ctx context.Context, collection, id string) (*models.Record, error)
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
	Delete(ctx context.Context, collection, id string) error
}
