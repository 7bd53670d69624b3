package device

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/pokemogu/TimecardSystem-sub001/internal/shared/apperror"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var ErrDeviceNotFound = apperror.New(
	apperror.CodeNotFound,
	"Device not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=device_service.go -destination=mock/device_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterDeviceRequest) (DeviceResponse, error)
	GetAll(ctx context.Context) ([]DeviceResponse, error)
	Lookup(ctx context.Context, account string) (*Device, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
	sf   *singleflight.Group
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo, sf: &singleflight.Group{}}
}

func (s *service) Register(ctx context.Context, req RegisterDeviceRequest) (DeviceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeviceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	d := &Device{
		ID:      uuid.New(),
		Account: req.Account,
		Name:    req.Name,
	}
	if err := qtx.Create(ctx, d); err != nil {
		return DeviceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeviceResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DeviceResponse, error) {
	devices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

// Lookup resolves a device account to its row. Punches from one terminal
// arrive in bursts at shift change, so concurrent lookups for the same
// account are collapsed with singleflight.
func (s *service) Lookup(ctx context.Context, account string) (*Device, error) {
	v, err, _ := s.sf.Do("device:"+account, func() (interface{}, error) {
		d, err := s.repo.FindByAccount(ctx, account)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDeviceNotFound
			}
			return nil, err
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Device), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(d Device) DeviceResponse {
	return DeviceResponse{
		ID:      d.ID.String(),
		Account: d.Account,
		Name:    d.Name,
	}
}
