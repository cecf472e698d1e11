package ports

import (
	"context"
	"encoding/json"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// Response pairs the HTTP status with the payload. Body is set only when the
// payload decoded as JSON; Raw always holds what the service sent.
type Response[T any] struct {
	StatusCode int
	Body       *T
	Raw        []byte
}

// Text returns the raw payload as a string.
func (r *Response[T]) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Raw)
}

// Decoded reports whether Body holds a JSON decoded payload.
func (r *Response[T]) Decoded() bool {
	return r != nil && r.Body != nil
}

// Object is a loosely typed JSON body.
type Object = map[string]json.RawMessage

//go:generate mockgen -source=api.go -destination=mock/api.go -package=mock

// API is the PetFriends surface the scenarios drive. Non-2xx responses are
// not errors; only transport failures are.
type API interface {
	GetAPIKey(ctx context.Context, creds domain.Credentials) (*Response[domain.AuthKey], error)
	ListPets(ctx context.Context, authKey string, filter domain.Filter) (*Response[domain.PetList], error)
	AddNewPet(ctx context.Context, authKey string, pet domain.NewPet) (*Response[domain.Pet], error)
	UpdatePetInfo(ctx context.Context, authKey, petID string, info domain.PetInfo) (*Response[domain.Pet], error)
	DeletePet(ctx context.Context, authKey, petID string) (*Response[Object], error)
	SetPetPhoto(ctx context.Context, authKey, petID string, photo *domain.Photo) (*Response[domain.Pet], error)
}
