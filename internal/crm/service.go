package crm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hugh/agencyhub/internal/database"
	"github.com/hugh/agencyhub/pkg/crypto"
	"gorm.io/gorm"
)

// Service implements every tenant-scoped repository over a single gorm
// handle. It keeps no mutable state, so one instance serves all requests.
type Service struct {
	db        *gorm.DB
	encryptor *crypto.Encryptor
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates the repository service. A nil encryptor stores SMTP
// passwords as given.
func NewService(db *gorm.DB, encryptor *crypto.Encryptor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:        db,
		encryptor: encryptor,
		logger:    logger.With("component", "crm"),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// WithClock replaces the time source for created_at, updated_at and
// published_at.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// fail logs err where it happened and hands it back unchanged.
func (s *Service) fail(ctx context.Context, op string, err error, attrs ...any) error {
	level := slog.LevelError
	if IsClientError(err) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, "error", err)
	s.logger.Log(ctx, level, op+" failed", attrs...)
	return err
}

func (s *Service) invalid(ctx context.Context, op string, fields map[string]string, attrs ...any) error {
	return s.fail(ctx, op, &ValidationError{Fields: fields}, attrs...)
}

// storeErr tags gateway constraint failures while keeping the driver error
// reachable through errors.As.
func storeErr(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: duplicate value: %w: %w", op, ErrConstraintViolation, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: referenced record does not exist: %w: %w", op, ErrConstraintViolation, err)
	case database.IsConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// updateByID applies a column map to one row and reports ErrNotFound when the
// id matched nothing.
func (s *Service) updateByID(ctx context.Context, model any, entity string, id uint, updates map[string]any) error {
	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return storeErr("update "+entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entity, id)
	}
	return nil
}

// reload reads a row back after a write.
func (s *Service) reload(ctx context.Context, dest any, entity string, id uint) error {
	err := s.db.WithContext(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", entity, err)
	}
	return nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
