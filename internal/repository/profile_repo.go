package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/osmatch/internal/db"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/store"
)

// ProfileRepository is the SQL-backed Profile Store.
type ProfileRepository struct {
	db *gorm.DB
}

var _ store.ProfileStore = (*ProfileRepository)(nil)

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetProfile loads a single profile; unknown ids yield store.ErrNotFound.
func (r *ProfileRepository) GetProfile(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	var row db.Profile
	err := r.db.WithContext(ctx).Where("id = ?", string(id)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return toDomainProfile(row), nil
}

// GetProfiles loads many profiles with a single IN query.
func (r *ProfileRepository) GetProfiles(ctx context.Context, ids []domain.ProfileID) (map[domain.ProfileID]domain.Profile, error) {
	out := make(map[domain.ProfileID]domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, string(id))
	}

	var rows []db.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[domain.ProfileID(row.ID)] = toDomainProfile(row)
	}
	return out, nil
}

// QueryProfiles returns profiles matching every set equality predicate.
//
// Behavior:
//   - Ordered by id ASC so the pool is deterministic.
//   - limit <= 0 means no cap.
//
// Example:
//
//	repo.QueryProfiles(ctx, store.ProfileQuery{Gender: "kadin", OS: "Ubuntu"}, 20)
func (r *ProfileRepository) QueryProfiles(ctx context.Context, q store.ProfileQuery, limit int) ([]domain.Profile, error) {
	query := r.db.WithContext(ctx).Model(&db.Profile{})
	if q.Gender != "" {
		query = query.Where("gender = ?", string(q.Gender))
	}
	if q.OS != "" {
		query = query.Where("os = ?", q.OS)
	}
	query = query.Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []db.Profile
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainProfile(row))
	}
	return out, nil
}

// SaveProfile inserts the profile or overwrites every mutable column of an existing one.
func (r *ProfileRepository) SaveProfile(ctx context.Context, p domain.Profile) error {
	row := db.Profile{
		ID:        string(p.ID),
		Name:      p.Name,
		Gender:    string(p.Gender),
		OS:        p.OS,
		BirthDate: p.BirthDate.UTC(),
		Bio:       p.Bio,
		Image:     p.Image,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "gender", "os", "birth_date", "bio", "image", "updated_at"}),
		}).
		Create(&row).Error
}

func toDomainProfile(row db.Profile) domain.Profile {
	return domain.Profile{
		ID:        domain.ProfileID(row.ID),
		Name:      row.Name,
		Gender:    domain.Gender(row.Gender),
		OS:        row.OS,
		BirthDate: row.BirthDate.UTC(),
		Bio:       row.Bio,
		Image:     row.Image,
	}
}
