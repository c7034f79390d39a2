package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/freelancework02/welfare-admin/internal/common"
	"github.com/freelancework02/welfare-admin/internal/dbx"
	"github.com/freelancework02/welfare-admin/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, collection string) ([]*models.Record, error) {
	query :=
		`SELECT id, collection, title, description, body, owner_id, created_at, updated_at
		 FROM records
		 WHERE collection = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		rec := &models.Record{}
		if err := rows.Scan(&rec.ID, &rec.Collection, &rec.Title, &rec.Description,
			&rec.Body, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, collection, id string) (*models.Record, error) {
	query :=
		`SELECT id, collection, title, description, body, owner_id, created_at, updated_at
		 FROM records
		 WHERE collection = $1 AND id = $2
		 `

	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, collection, id).Scan(
		&rec.ID, &rec.Collection, &rec.Title, &rec.Description,
		&rec.Body, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO records (id, collection, title, description, body, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.Collection, record.Title, record.Description,
		record.Body, record.OwnerID).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) Update(ctx context.Context, record *models.Record) error {
	query :=
		`UPDATE records
		 SET title = $1, description = $2, body = $3, owner_id = $4, updated_at = now()
		 WHERE collection = $5 AND id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		record.Title, record.Description, record.Body, record.OwnerID,
		record.Collection, record.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
