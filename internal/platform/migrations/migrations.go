package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the fake service schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&accountRecord{},
		&petRecord{},
	)
}

// Account schema mirrors the fake service Postgres store.
type accountRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Password  string    `gorm:"column:password"`
	Key       string    `gorm:"column:auth_key;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Pet schema mirrors the fake service Postgres store. seq breaks ties
// between pets created in the same instant.
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
