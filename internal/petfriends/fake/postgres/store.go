package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	"github.com/Apurer/petfriends-api-tests/internal/shared/projection"
)

var _ ports.Store = (*Store)(nil)

// Store persists fake service state in PostgreSQL. The caller owns the DB
// lifecycle and applies migrations.Run beforehand.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type accountRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Password  string    `gorm:"column:password"`
	Key       string    `gorm:"column:auth_key;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

type petRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	Seq        int64     `gorm:"column:seq;type:bigserial;<-:false"`
	OwnerID    string    `gorm:"column:owner_id;index"`
	Name       string    `gorm:"column:name"`
	AnimalType string    `gorm:"column:animal_type"`
	Age        string    `gorm:"column:age"`
	Photo      string    `gorm:"column:photo;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// SaveAccount upserts by email.
func (s *Store) SaveAccount(ctx context.Context, account *ports.Account) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if account == nil {
		return errors.New("cannot save nil account")
	}
	record := accountRecord{
		ID:       account.ID,
		Email:    strings.ToLower(strings.TrimSpace(account.Email)),
		Password: account.Password,
		Key:      account.Key,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"password":   record.Password,
				"auth_key":   record.Key,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

// FindAccountByEmail matches emails case-insensitively.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*ports.Account, error) {
	return s.findAccount(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// FindAccountByKey resolves an auth key.
func (s *Store) FindAccountByKey(ctx context.Context, key string) (*ports.Account, error) {
	if key == "" {
		return nil, ports.ErrNotFound
	}
	return s.findAccount(ctx, "auth_key = ?", key)
}

func (s *Store) findAccount(ctx context.Context, query string, arg any) (*ports.Account, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record accountRecord
	if err := s.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &ports.Account{ID: record.ID, Email: record.Email, Password: record.Password, Key: record.Key}, nil
}

// SavePet inserts or updates a pet.
func (s *Store) SavePet(ctx context.Context, pet *ports.StoredPet) (*ports.PetProjection, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := petRecord{
		ID:         pet.ID,
		OwnerID:    pet.OwnerID,
		Name:       pet.Name,
		AnimalType: pet.AnimalType,
		Age:        pet.Age,
		Photo:      pet.Photo,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"animal_type": record.AnimalType,
				"age":         record.Age,
				"photo":       record.Photo,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return s.GetPet(ctx, pet.ID)
}

// GetPet fetches a pet by identifier.
func (s *Store) GetPet(ctx context.Context, id string) (*ports.PetProjection, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// DeletePet removes a pet.
func (s *Store) DeletePet(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&petRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListPets returns pets newest first, optionally restricted to one owner.
func (s *Store) ListPets(ctx context.Context, ownerID string) ([]*ports.PetProjection, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("seq DESC")
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	var records []petRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*ports.PetProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

func (r petRecord) toProjection() *ports.PetProjection {
	return &ports.PetProjection{
		Entity: &ports.StoredPet{
			ID:         r.ID,
			OwnerID:    r.OwnerID,
			Name:       r.Name,
			AnimalType: r.AnimalType,
			Age:        r.Age,
			Photo:      r.Photo,
		},
		Metadata: projection.Metadata{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Sequence:  r.Seq,
		},
	}
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres store not configured")
	}
	return nil
}
