package services

import (
	"context"
	"testing"

	"github.com/freelancework02/welfare-admin/internal/common"
	"github.com/freelancework02/welfare-admin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordsRepo struct {
	listOut []*models.Record
	listErr error

	created   []*models.Record
	updateErr error
	deleted   []string
	deleteErr error
}

func (f *fakeRecordsRepo) List(ctx context.Context, collection string) ([]*models.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeRecordsRepo) Get(ctx context.Context, collection, id string) (*models.Record, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeRecordsRepo) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	record.ID = "generated"
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeRecordsRepo) Update(ctx context.Context, record *models.Record) error {
	return f.updateErr
}

func (f *fakeRecordsRepo) Delete(ctx context.Context, collection, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newContentService(repo *fakeRecordsRepo) *ContentService {
	return NewContentService(nil, &fakeRepoManager{records: repo})
}

func TestContentList_UnknownCollection(t *testing.T) {
	s := newContentService(&fakeRecordsRepo{})

	_, err := s.List(context.Background(), "gadgets")
	assert.ErrorIs(t, err, common.ErrorUnknownCollection)
}

func TestContentList_Success(t *testing.T) {
	repo := &fakeRecordsRepo{listOut: []*models.Record{{ID: "r-1"}, {ID: "r-2"}}}
	s := newContentService(repo)

	got, err := s.List(context.Background(), models.CollectionArticles)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestContentCreate_Validation(t *testing.T) {
	s := newContentService(&fakeRecordsRepo{})

	_, err := s.Create(context.Background(), &models.Record{Collection: models.CollectionBlogs})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestContentCreate_Success(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := newContentService(repo)

	rec, err := s.Create(context.Background(), &models.Record{Collection: models.CollectionBlogs, Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, "generated", rec.ID)
	assert.Len(t, repo.created, 1)
}

func TestContentUpdate_Validation(t *testing.T) {
	s := newContentService(&fakeRecordsRepo{})

	err := s.Update(context.Background(), &models.Record{Collection: models.CollectionBlogs, Title: "T"})
	assert.ErrorIs(t, err, common.ErrorValidation, "missing id must fail before hitting the store")
}

func TestContentDelete_Success(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := newContentService(repo)

	require.NoError(t, s.Delete(context.Background(), models.CollectionContacts, "r-9"))
	assert.Equal(t, []string{"r-9"}, repo.deleted)
}

func TestContentDelete_NotFound(t *testing.T) {
	repo := &fakeRecordsRepo{deleteErr: common.ErrorNotFound}
	s := newContentService(repo)

	err := s.Delete(context.Background(), models.CollectionContacts, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
