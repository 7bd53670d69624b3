package user

import (
	"context"
	"database/sql"
	"errors"

	usererrors "github.com/pokemogu/TimecardSystem-sub001/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ResolveAccount(ctx context.Context, account string) (*User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByAccount(ctx, req.Account); err == nil {
		return UserResponse{}, usererrors.ErrAccountTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	patternID, err := parseOptionalUUID(req.WorkPatternID)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:            uuid.New(),
		Account:       req.Account,
		Name:          req.Name,
		Section:       req.Section,
		Department:    req.Department,
		WorkPatternID: patternID,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("account", u.Account),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// ResolveAccount maps a punch identity to a registered user. Punch
// ingestion rejects unknown identities before any write.
func (s *service) ResolveAccount(ctx context.Context, account string) (*User, error) {
	u, err := s.repo.FindByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUnknownIdentity
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	patternID, err := parseOptionalUUID(req.WorkPatternID)
	if err != nil {
		return UserResponse{}, err
	}

	// Account is immutable identity; only attributes change.
	u.Name = req.Name
	u.Section = req.Section
	u.Department = req.Department
	u.WorkPatternID = patternID

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
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

func parseOptionalUUID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, usererrors.ErrInvalidWorkPatternRef
	}
	return &id, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID.String(),
		Account:    u.Account,
		Name:       u.Name,
		Section:    u.Section,
		Department: u.Department,
	}
	if u.WorkPatternID != nil {
		v := u.WorkPatternID.String()
		resp.WorkPatternID = &v
	}
	return resp
}
