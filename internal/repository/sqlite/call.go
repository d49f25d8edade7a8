package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isaacphi/rendertools/internal/domain"
	"github.com/isaacphi/rendertools/internal/repository"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type callRepo struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) repository.CallRepository {
	return &callRepo{db: db}
}

func (r *callRepo) Record(ctx context.Context, call *domain.Call) error {
	if call.ID == uuid.Nil {
		call.ID = uuid.New()
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(call).Error, "failed to record call")
}

// List returns the most recent calls first. A limit of zero or less returns
// every call.
func (r *callRepo) List(ctx context.Context, limit int) ([]*domain.Call, error) {
	var calls []*domain.Call
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&calls).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list calls")
	}
	return calls, nil
}

func (r *callRepo) FindByPartialID(ctx context.Context, partialID string) (*domain.Call, error) {
	// Convert the string to lowercase for case-insensitive comparison
	partialID = strings.ToLower(strings.TrimSpace(partialID))
	if partialID == "" {
		return nil, domain.NoCallError{}
	}

	var calls []*domain.Call
	if err := r.db.WithContext(ctx).
		Where(`LOWER(CAST(id AS TEXT)) LIKE ? ESCAPE '\'`, likeEscaper.Replace(partialID)+"%").
		Limit(2).
		Find(&calls).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find call")
	}

	switch len(calls) {
	case 0:
		return nil, domain.NoCallError{}
	case 1:
		return calls[0], nil
	}
	return nil, fmt.Errorf("id prefix %q matches more than one call", partialID)
}

// likeEscaper makes a LIKE pattern match its input literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *callRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Call{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete call %s", id)
	}
	if res.RowsAffected == 0 {
		return domain.NoCallError{}
	}
	return nil
}

func (r *callRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
