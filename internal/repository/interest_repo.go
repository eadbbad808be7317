package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/osmatch/internal/db"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// InterestRepository is the SQL-backed Interest Ledger.
// It encapsulates all queries related to likes between profiles.
type InterestRepository struct {
	db *gorm.DB
}

var _ store.InterestLedger = (*InterestRepository)(nil)

// NewInterestRepository creates a new repository bound to the given DB connection.
func NewInterestRepository(database *gorm.DB) *InterestRepository {
	return &InterestRepository{db: database}
}

// AppendInterest records that from liked to.
//
// Behavior:
//   - If the (from_id, to_id) pair does not exist → a new row is inserted.
//   - If it exists → nothing is written and the stored row is returned,
//     so the original timestamp is preserved.
//   - Composite PK enforces one row per ordered pair.
//
// Example:
//
//	repo.AppendInterest(ctx, "a", "b") // a liked b
func (r *InterestRepository) AppendInterest(
	ctx context.Context,
	from, to domain.ProfileID,
) (domain.InterestEvent, error) {
	row := db.Interest{FromID: string(from), ToID: string(to)}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "from_id"}, {Name: "to_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return domain.InterestEvent{}, res.Error
	}

	if res.RowsAffected == 0 {
		// duplicate: report the stored event
		if err := r.db.WithContext(ctx).
			Where("from_id = ? AND to_id = ?", row.FromID, row.ToID).
			Take(&row).Error; err != nil {
			return domain.InterestEvent{}, fmt.Errorf("load existing interest: %w", err)
		}
	}
	return toInterestEvent(row), nil
}

// QueryInterest returns every like where the given side equals id.
//
// Behavior:
//   - by == store.ByFrom → likes sent by id.
//   - by == store.ByTo → likes received by id.
//   - Ordered by created_at ASC, then by the pair, for a stable result.
//
// Example:
//
//	repo.QueryInterest(ctx, store.ByTo, "b") // everyone who liked b
func (r *InterestRepository) QueryInterest(
	ctx context.Context,
	by store.InterestField,
	id domain.ProfileID,
) ([]domain.InterestEvent, error) {
	var column string
	switch by {
	case store.ByFrom:
		column = "from_id"
	case store.ByTo:
		column = "to_id"
	default:
		return nil, fmt.Errorf("unsupported interest field %d", by)
	}

	var rows []db.Interest
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", string(id)).
		Order("created_at ASC, from_id ASC, to_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.InterestEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInterestEvent(row))
	}
	return out, nil
}

// HasInterest checks whether from has liked to.
//
// Behavior:
//   - Returns true if a row with from_id = X and to_id = Y exists.
//   - Used for the reverse-direction check when a like is recorded.
//
// Example:
//
//	repo.HasInterest(ctx, "b", "a") // -> true if b liked a
func (r *InterestRepository) HasInterest(
	ctx context.Context,
	from, to domain.ProfileID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Interest{}).
		Where("from_id = ? AND to_id = ?", string(from), string(to)).
		Count(&count).Error
	return count > 0, err
}

func toInterestEvent(row db.Interest) domain.InterestEvent {
	return domain.InterestEvent{
		From:      domain.ProfileID(row.FromID),
		To:        domain.ProfileID(row.ToID),
		Timestamp: row.CreatedAt.UTC(),
	}
}
