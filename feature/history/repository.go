package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit is the number of records List returns when no limit is given.
const DefaultLimit = 20

// Repository stores pass records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the history table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&PassRecord{}); err != nil {
		return fmt.Errorf("failed to migrate pass history: %w", err)
	}
	return nil
}

// Save stores a record.
func (r *Repository) Save(ctx context.Context, rec *PassRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save pass %s: %w", rec.PassID, err)
	}
	return nil
}

// List returns the most recent records first.
func (r *Repository) List(ctx context.Context, limit int) ([]PassRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var records []PassRecord
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pass history: %w", err)
	}
	return records, nil
}
