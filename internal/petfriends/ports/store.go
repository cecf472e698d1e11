package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petfriends-api-tests/internal/shared/projection"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unknown credentials or auth key")
)

// Account is a user of the fake service.
type Account struct {
	ID       string
	Email    string
	Password string
	Key      string
}

// StoredPet is the persisted form of a pet inside the fake service.
type StoredPet struct {
	ID         string
	OwnerID    string
	Name       string
	AnimalType string
	Age        string
	Photo      string
}

// PetProjection bundles a stored pet with persistence metadata.
type PetProjection = projection.Projection[*StoredPet]

// Store backs the fake PetFriends service.
type Store interface {
	SaveAccount(ctx context.Context, account *Account) error
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	FindAccountByKey(ctx context.Context, key string) (*Account, error)

	SavePet(ctx context.Context, pet *StoredPet) (*PetProjection, error)
	GetPet(ctx context.Context, id string) (*PetProjection, error)
	DeletePet(ctx context.Context, id string) error
	// ListPets returns newest first. An empty ownerID lists every pet.
	ListPets(ctx context.Context, ownerID string) ([]*PetProjection, error)
}
