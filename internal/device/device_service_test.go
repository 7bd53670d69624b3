package device

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, d *Device) error
	findByAccountFn func(ctx context.Context, account string) (*Device, error)
	findAllFn       func(ctx context.Context) ([]Device, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository            { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, d *Device) error { return f.createFn(ctx, d) }
func (f *fakeRepo) FindByAccount(ctx context.Context, account string) (*Device, error) {
	return f.findByAccountFn(ctx, account)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Device, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error   { return f.deleteFn(ctx, id) }

func TestService_RegisterAndLookup(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Device
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, d *Device) error { saved = *d; return nil }
	repo.findByAccountFn = func(ctx context.Context, account string) (*Device, error) {
		if saved.Account == account {
			cp := saved
			return &cp, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), RegisterDeviceRequest{
		Account: "gate-01", Name: "Main Gate",
	})
	assert.NoError(t, err)
	assert.Equal(t, "gate-01", resp.Account)

	d, err := svc.Lookup(context.Background(), "gate-01")
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Lookup_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByAccountFn = func(ctx context.Context, account string) (*Device, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	_, err := svc.Lookup(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestService_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	deleted := ""
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.deleteFn = func(ctx context.Context, id string) error { deleted = id; return nil }

	svc := NewService(db, repo)

	id := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, deleted)
}
