// Package fake serves an in-process stand-in for the PetFriends API so the
// client and the scenario catalog can run without network access.
package fake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	apierrors "github.com/Apurer/petfriends-api-tests/internal/shared/errors"
)

// Server holds the handlers and their store.
type Server struct {
	store     ports.Store
	logger    *slog.Logger
	newID     func() string
	responder *apierrors.Responder
}

// Option configures the server.
type Option func(*Server)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer wires handlers to a store.
func NewServer(store ports.Store, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:     func() string { return uuid.NewString() },
		responder: apierrors.NewResponder("", mapStoreError),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Router builds a gin engine with the PetFriends routes registered.
func (s *Server) Router(middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	s.Register(router)
	return router
}

// Register mounts the routes on an existing router.
func (s *Server) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/key", s.getAPIKey)

	authed := api.Group("", s.requireKey)
	authed.GET("/pets", s.listPets)
	authed.POST("/pets", s.addPetWithPhoto)
	authed.POST("/create_pet_simple", s.addPetSimple)
	authed.PUT("/pets/:petId", s.updatePet)
	authed.DELETE("/pets/:petId", s.deletePet)
	authed.POST("/pets/set_photo/:petId", s.setPhoto)
}

// SeedAccount registers an account and returns it with a fresh auth key.
func (s *Server) SeedAccount(ctx context.Context, creds domain.Credentials) (*ports.Account, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" {
		return nil, errors.New("account email is required")
	}
	account := &ports.Account{
		ID:       s.newID(),
		Email:    email,
		Password: creds.Password,
		Key:      s.newKey(),
	}
	if existing, err := s.store.FindAccountByEmail(ctx, email); err == nil {
		account.ID = existing.ID
		account.Key = existing.Key
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("seed account %s: %w", email, err)
	}
	s.logger.Info("account seeded", slog.String("account.id", account.ID), slog.String("email", email))
	return account, nil
}

// SeedPet stores a pet owned by the account, bypassing HTTP.
func (s *Server) SeedPet(ctx context.Context, owner *ports.Account, info domain.PetInfo) (domain.Pet, error) {
	if owner == nil {
		return domain.Pet{}, errors.New("pet owner is required")
	}
	saved, err := s.store.SavePet(ctx, &ports.StoredPet{
		ID:         s.newID(),
		OwnerID:    owner.ID,
		Name:       info.Name,
		AnimalType: info.AnimalType,
		Age:        string(info.Age),
	})
	if err != nil {
		return domain.Pet{}, err
	}
	return toPet(saved), nil
}

func (s *Server) newKey() string {
	return strings.ReplaceAll(s.newID()+s.newID(), "-", "")
}

func mapStoreError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrUnauthorized):
		return apierrors.NewForbiddenProblem(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func toPet(p *ports.PetProjection) domain.Pet {
	if p == nil || p.Entity == nil {
		return domain.Pet{}
	}
	created := p.Metadata.CreatedAt
	return domain.Pet{
		ID:         p.Entity.ID,
		Name:       p.Entity.Name,
		AnimalType: p.Entity.AnimalType,
		Age:        domain.Age(p.Entity.Age),
		PetPhoto:   p.Entity.Photo,
		UserID:     p.Entity.OwnerID,
		CreatedAt:  fmt.Sprintf("%d.%06d", created.Unix(), created.Nanosecond()/int(time.Microsecond)),
	}
}
