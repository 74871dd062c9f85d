// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"log/slog"

	"holonet/internal/database"
	"holonet/internal/models"
	"holonet/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// base carries the per-table instrumentation every repository shares.
type base struct {
	db    *gorm.DB
	table string
	trace *observability.TraceLayer
	log   *observability.RepoLogger
}

func newBase(db *gorm.DB, table string) base {
	return base{
		db:    db,
		table: table,
		trace: observability.GetTraceLayer(database.SystemName(db.Dialector.Name())),
		log:   observability.NewRepoLogger(table),
	}
}

// observe runs fn inside a repository span and records its latency.
func (b base) observe(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	ctx, span := b.trace.TraceRepositoryMethod(ctx, method, b.table)
	done := observability.TrackQuery(method, b.table)
	err := fn(ctx)
	done()
	observability.EndSpan(span, err)
	return err
}

// readErr maps a lookup failure onto the error taxonomy.
func (b base) readErr(ctx context.Context, method, resource string, id interface{}, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	b.log.LogError(ctx, err, method)
	return models.NewInternalError(err)
}

// writeErr maps a write failure onto the error taxonomy. Constraint
// violations keep the driver error reachable through Unwrap.
func (b base) writeErr(ctx context.Context, method string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrPlaintextPassword) {
		return err
	}

	err = database.TranslateError(err, b.table)
	if kind := database.KindLabel(err); kind != "" {
		observability.ConstraintViolations.WithLabelValues(b.table, kind).Inc()
		b.log.LogViolation(ctx, err, method)
		return err
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	b.log.LogError(ctx, err, method)
	return models.NewInternalError(err)
}

// affected turns a zero-row update or delete into a not-found error.
func affected(result *gorm.DB, resource string, id uint) error {
	if result.Error == nil && result.RowsAffected == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return result.Error
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// page applies clamped pagination and a stable order.
func page(db *gorm.DB, orderBy string, limit, offset int) *gorm.DB {
	return db.Order(orderBy).Limit(clampLimit(limit)).Offset(clampOffset(offset))
}

// link inserts a junction row, skipping a pair that already exists.
// It reports whether a row was written.
func (b base) link(ctx context.Context, row interface{}, attrs ...slog.Attr) (bool, error) {
	var added bool
	err := b.observe(ctx, "Link", func(ctx context.Context) error {
		result := b.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(row)
		if result.Error != nil {
			return b.writeErr(ctx, "Link", result.Error)
		}
		added = result.RowsAffected > 0
		if added {
			b.log.LogWrite(ctx, "Link", attrs...)
		}
		return nil
	})
	return added, err
}

// unlink deletes the junction row identified by row's composite key.
// Removing a pair that does not exist is not an error.
func (b base) unlink(ctx context.Context, row interface{}) error {
	return b.observe(ctx, "Unlink", func(ctx context.Context) error {
		if err := b.db.WithContext(ctx).Delete(row).Error; err != nil {
			return b.writeErr(ctx, "Unlink", err)
		}
		b.log.LogWrite(ctx, "Unlink")
		return nil
	})
}
