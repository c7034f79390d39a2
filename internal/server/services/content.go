package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freelancework02/welfare-admin/internal/common"
	"github.com/freelancework02/welfare-admin/internal/server/models"
	"github.com/freelancework02/welfare-admin/internal/server/repositories/repomanager"
)

type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

func (s *ContentService) checkCollection(collection string) error {
	if !models.IsKnownCollection(collection) {
		return common.ErrorUnknownCollection
	}
	return nil
}

func (s *ContentService) List(ctx context.Context, collection string) ([]*models.Record, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}

	repo := s.repomanager.Records(s.db)

	result, err := repo.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", collection, err)
	}
	return result, nil
}

func (s *ContentService) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	if err := s.checkCollection(record.Collection); err != nil {
		return nil, err
	}
	if record.Title == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Records(s.db)

	record, err := repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}
	return record, nil
}

func (s *ContentService) Update(ctx context.Context, record *models.Record) error {
	if err := s.checkCollection(record.Collection); err != nil {
		return err
	}
	if record.ID == "" || record.Title == "" {
		return common.ErrorValidation
	}

	repo := s.repomanager.Records(s.db)

	if err := repo.Update(ctx, record); err != nil {
		return fmt.Errorf("error updating record: %w", err)
	}
	return nil
}

func (s *ContentService) Delete(ctx context.Context, collection, id string) error {
	if err := s.checkCollection(collection); err != nil {
		return err
	}

	repo := s.repomanager.Records(s.db)

	if err := repo.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	return nil
}
