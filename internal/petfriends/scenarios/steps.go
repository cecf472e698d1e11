package scenarios

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
)

// Env is everything a scenario needs. It is built once per run and passed
// explicitly; scenarios share nothing else.
type Env struct {
	API         ports.API
	Credentials domain.Credentials
	Fixtures    *Fixtures
}

func (e Env) validate() error {
	if e.API == nil {
		return errors.New("scenario env: API is required")
	}
	if e.Fixtures == nil {
		return errors.New("scenario env: fixtures are required")
	}
	return nil
}

// defaultPet is created whenever a scenario has to establish owned pets.
var defaultPet = petInput{name: "bella", animalType: "husky", age: "0", photo: PhotoDog}

type petInput struct {
	name       string
	animalType string
	age        domain.Age
	photo      string
}

func (e Env) newPet(in petInput) (domain.NewPet, error) {
	pet := domain.NewPet{Name: in.name, AnimalType: in.animalType, Age: in.age}
	if in.photo != "" {
		photo, err := e.Fixtures.Photo(in.photo)
		if err != nil {
			return domain.NewPet{}, err
		}
		pet.Photo = photo
	}
	return pet, nil
}

// authenticate obtains an auth key for the configured credentials.
func (e Env) authenticate(ctx context.Context) (string, error) {
	resp, err := e.API.GetAPIKey(ctx, e.Credentials)
	if err != nil {
		return "", err
	}
	if err := expectStatus("authenticate", resp, http.StatusOK); err != nil {
		return "", err
	}
	if !resp.Decoded() || resp.Body.Key == "" {
		return "", &AssertionError{Step: "authenticate", Expected: "key in body", Actual: "no key", Body: resp.Text()}
	}
	return resp.Body.Key, nil
}

func (e Env) listPets(ctx context.Context, key string, filter domain.Filter) (domain.PetList, error) {
	resp, err := e.API.ListPets(ctx, key, filter)
	if err != nil {
		return domain.PetList{}, err
	}
	step := fmt.Sprintf("list pets (filter=%q)", filter)
	if err := expectStatus(step, resp, http.StatusOK); err != nil {
		return domain.PetList{}, err
	}
	if !resp.Decoded() {
		return domain.PetList{}, &AssertionError{Step: step, Expected: "pets in body", Actual: "undecodable body", Body: resp.Text()}
	}
	return *resp.Body, nil
}

func (e Env) ownedPets(ctx context.Context, key string) (domain.PetList, error) {
	return e.listPets(ctx, key, domain.FilterMyPets)
}

// ensureOwned creates default pets until the account owns at least n.
func (e Env) ensureOwned(ctx context.Context, key string, n int) (domain.PetList, error) {
	owned, err := e.ownedPets(ctx, key)
	if err != nil {
		return domain.PetList{}, err
	}
	missing := n - len(owned.Pets)
	if missing <= 0 {
		return owned, nil
	}
	pet, err := e.newPet(defaultPet)
	if err != nil {
		return domain.PetList{}, err
	}
	for i := 0; i < missing; i++ {
		resp, err := e.API.AddNewPet(ctx, key, pet)
		if err != nil {
			return domain.PetList{}, err
		}
		if resp.StatusCode != http.StatusOK {
			return domain.PetList{}, fmt.Errorf("%w: creating owned pet returned %d", ErrPrecondition, resp.StatusCode)
		}
	}
	owned, err = e.ownedPets(ctx, key)
	if err != nil {
		return domain.PetList{}, err
	}
	if len(owned.Pets) < n {
		return domain.PetList{}, fmt.Errorf("%w: need %d owned pets, service lists %d", ErrPrecondition, n, len(owned.Pets))
	}
	return owned, nil
}

// requireOwned fails with ErrPrecondition instead of creating pets.
func (e Env) requireOwned(ctx context.Context, key string, selector Selector) (string, error) {
	owned, err := e.ownedPets(ctx, key)
	if err != nil {
		return "", err
	}
	if len(owned.Pets) == 0 {
		return "", fmt.Errorf("%w: there is no my pets", ErrPrecondition)
	}
	return selector(owned)
}

func expectStatus[T any](step string, resp *ports.Response[T], want int) error {
	if resp.StatusCode != want {
		return &AssertionError{Step: step + " status", Expected: want, Actual: resp.StatusCode, Body: resp.Text()}
	}
	return nil
}

func expectName(step string, resp *ports.Response[domain.Pet], want string) error {
	if !resp.Decoded() {
		return &AssertionError{Step: step + " name", Expected: fmt.Sprintf("%q", want), Actual: "undecodable body", Body: resp.Text()}
	}
	if resp.Body.Name != want {
		return &AssertionError{Step: step + " name", Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", resp.Body.Name)}
	}
	return nil
}

func expectAbsent(step string, list domain.PetList, id string) error {
	if list.Contains(id) {
		return &AssertionError{Step: step, Expected: fmt.Sprintf("pet %s absent", id), Actual: "pet still listed"}
	}
	return nil
}
