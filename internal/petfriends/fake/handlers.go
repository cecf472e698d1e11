package fake

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	apierrors "github.com/Apurer/petfriends-api-tests/internal/shared/errors"
)

const (
	accountKey = "petfriends.account"
	photoField = "pet_photo"
	// maxPhotoBytes caps uploads held in memory.
	maxPhotoBytes = 8 << 20
)

var errPhotoTooLarge = fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)

// Get /api/key
func (s *Server) getAPIKey(c *gin.Context) {
	email := c.GetHeader("email")
	password := c.GetHeader("password")
	account, err := s.store.FindAccountByEmail(c.Request.Context(), email)
	if errors.Is(err, ports.ErrNotFound) || (err == nil && account.Password != password) {
		s.logger.Warn("rejected credentials", slog.String("email", email))
		s.responder.Respond(c, apierrors.NewForbiddenProblem("this user wasn't found in database"))
		return
	}
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.AuthKey{Key: account.Key})
}

// requireKey resolves the auth_key header to an account.
func (s *Server) requireKey(c *gin.Context) {
	key := c.GetHeader("auth_key")
	if key == "" {
		s.responder.Respond(c, apierrors.NewForbiddenProblem("auth_key header is required"))
		return
	}
	account, err := s.store.FindAccountByKey(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			err = ports.ErrUnauthorized
		}
		s.responder.RespondError(c, err)
		return
	}
	c.Set(accountKey, account)
	c.Next()
}

func currentAccount(c *gin.Context) *ports.Account {
	value, _ := c.Get(accountKey)
	account, _ := value.(*ports.Account)
	return account
}

// Get /api/pets
func (s *Server) listPets(c *gin.Context) {
	filter := domain.Filter(c.Query("filter"))
	if !filter.Valid() {
		s.responder.Respond(c, apierrors.NewValidationProblem(map[string]string{
			"filter": "must be empty or my_pets",
		}))
		return
	}
	owner := ""
	if filter == domain.FilterMyPets {
		owner = currentAccount(c).ID
	}
	stored, err := s.store.ListPets(c.Request.Context(), owner)
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	list := domain.PetList{Pets: make([]domain.Pet, 0, len(stored))}
	for _, p := range stored {
		list.Pets = append(list.Pets, toPet(p))
	}
	c.JSON(http.StatusOK, list)
}

// Post /api/pets
func (s *Server) addPetWithPhoto(c *gin.Context) {
	photo, ok := s.readPhoto(c, false)
	if !ok {
		return
	}
	s.createPet(c, photo)
}

// Post /api/create_pet_simple
func (s *Server) addPetSimple(c *gin.Context) {
	s.createPet(c, "")
}

func (s *Server) createPet(c *gin.Context, photo string) {
	account := currentAccount(c)
	saved, err := s.store.SavePet(c.Request.Context(), &ports.StoredPet{
		ID:         s.newID(),
		OwnerID:    account.ID,
		Name:       c.PostForm("name"),
		AnimalType: c.PostForm("animal_type"),
		Age:        c.PostForm("age"),
		Photo:      photo,
	})
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	s.logger.Info("pet created", slog.String("pet.id", saved.Entity.ID), slog.Bool("pet.photo", photo != ""))
	c.JSON(http.StatusOK, toPet(saved))
}

// Put /api/pets/:petId
func (s *Server) updatePet(c *gin.Context) {
	current, ok := s.ownedPet(c)
	if !ok {
		return
	}
	pet := *current.Entity
	pet.Name = c.PostForm("name")
	pet.AnimalType = c.PostForm("animal_type")
	pet.Age = c.PostForm("age")
	saved, err := s.store.SavePet(c.Request.Context(), &pet)
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPet(saved))
}

// Delete /api/pets/:petId
// Unknown ids are acknowledged with 200, as the real service does.
func (s *Server) deletePet(c *gin.Context) {
	id := c.Param("petId")
	current, err := s.store.GetPet(c.Request.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		c.Status(http.StatusOK)
		return
	}
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	if current.Entity.OwnerID != currentAccount(c).ID {
		s.responder.Respond(c, apierrors.NewForbiddenProblem("pet belongs to another user"))
		return
	}
	if err := s.store.DeletePet(c.Request.Context(), id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		s.responder.RespondError(c, err)
		return
	}
	s.logger.Info("pet deleted", slog.String("pet.id", id))
	c.Status(http.StatusOK)
}

// Post /api/pets/set_photo/:petId
func (s *Server) setPhoto(c *gin.Context) {
	current, ok := s.ownedPet(c)
	if !ok {
		return
	}
	photo, ok := s.readPhoto(c, true)
	if !ok {
		return
	}
	pet := *current.Entity
	pet.Photo = photo
	saved, err := s.store.SavePet(c.Request.Context(), &pet)
	if err != nil {
		s.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPet(saved))
}

func (s *Server) ownedPet(c *gin.Context) (*ports.PetProjection, bool) {
	id := c.Param("petId")
	current, err := s.store.GetPet(c.Request.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		s.responder.Respond(c, apierrors.NewNotFoundProblem("pet", id))
		return nil, false
	}
	if err != nil {
		s.responder.RespondError(c, err)
		return nil, false
	}
	if current.Entity.OwnerID != currentAccount(c).ID {
		s.responder.Respond(c, apierrors.NewForbiddenProblem("pet belongs to another user"))
		return nil, false
	}
	return current, true
}

// readPhoto returns the uploaded image as a data URI.
func (s *Server) readPhoto(c *gin.Context, required bool) (string, bool) {
	header, err := c.FormFile(photoField)
	absent := errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)
	if absent && !required {
		return "", true
	}
	if err != nil {
		s.responder.BadRequest(c, "pet_photo: "+err.Error())
		return "", false
	}
	data, err := readPart(header)
	if err != nil {
		s.responder.BadRequest(c, "pet_photo: "+err.Error())
		return "", false
	}
	photo, err := domain.NewPhoto(header.Filename, data)
	if err != nil {
		s.responder.BadRequest(c, "pet_photo: "+err.Error())
		return "", false
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		photo.ContentType = ct
	}
	return photo.DataURI(), true
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPhotoBytes {
		return nil, errPhotoTooLarge
	}
	return data, nil
}
