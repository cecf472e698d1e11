package scenarios

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// Scenario is one independent check against the service.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env Env) error
}

// LongName is 293 characters of lorem ipsum.
const LongName = "Lorem ipsum dolor sit amet, consectetuer adipiscing elit. Aenean commodo ligula eget dolor. " +
	"Aenean massa. Cum sociis natoque penatibus et magnis dis parturient montes, nascetur ridiculus mus. " +
	"Donec quam felis, ultricies nec, pellentesque eu, pretium quis, sem. Nulla consequat massa quis enim."

// Catalog returns every scenario in run order. Creation runs before update
// and deletion so the later ones find owned pets on a fresh account.
func Catalog() []Scenario {
	return []Scenario{
		{
			Name:        "get_api_key_for_valid_user",
			Description: "key request with valid credentials returns 200 and a key",
			Run:         apiKeyAccepted,
		},
		{
			// Uses the valid credentials and expects success, exactly as the
			// suite it replaces did. get_api_key_for_wrong_password is the real
			// negative case.
			Name:        "get_api_key_for_invalid_log_in",
			Description: "duplicate of the valid login check, kept for parity",
			Run:         apiKeyAccepted,
		},
		{
			Name:        "get_api_key_for_wrong_password",
			Description: "key request with a wrong password returns 403 and no key",
			Run:         apiKeyRejected,
		},
		{
			Name:        "get_all_pets_with_valid_key",
			Description: "listing every pet returns 200 and a non-empty list",
			Run:         listNonEmpty(domain.FilterAll),
		},
		{
			Name:        "get_my_pets_with_valid_key",
			Description: "listing my_pets returns 200 and a non-empty list",
			Run:         listNonEmpty(domain.FilterMyPets),
		},
		{
			Name:        "add_new_pet_with_valid_data",
			Description: "creating a pet with valid data and a photo echoes the name",
			Run:         addPet(petInput{name: "Bella", animalType: "husky", age: "0", photo: PhotoDog}),
		},
		{
			Name:        "add_new_pet_without_photo",
			Description: "creating a pet without a photo echoes the name and stores no photo",
			Run:         addPetWithoutPhoto(petInput{name: "Max", animalType: "beagle", age: "3"}),
		},
		{
			Name:        "add_new_pet_animal_type_cyrillic",
			Description: "creating a pet with a cyrillic animal type echoes the name",
			Run:         addPet(petInput{name: "Diamond", animalType: "пудель", age: "2", photo: PhotoPoodle}),
		},
		{
			Name:        "add_new_pet_incorrect_data",
			Description: "creating a pet with symbol name, numeric type and huge age is accepted",
			Run:         addPet(petInput{name: `!@#$%^&*:"\<>?`, animalType: "33333", age: "123456789", photo: PhotoDog}),
		},
		{
			Name:        "add_new_pet_name_293_symbols",
			Description: "creating a pet with a 293 character name is accepted",
			Run:         addPet(petInput{name: LongName, animalType: "пудель", age: "2", photo: PhotoPoodle}),
		},
		{
			Name:        "add_new_pet_no_data",
			Description: "creating a pet with empty fields is accepted and echoes an empty name",
			Run:         addPet(petInput{name: "", animalType: "", age: "", photo: PhotoPomeranian}),
		},
		{
			Name:        "add_new_pet_round_trip",
			Description: "a created pet shows up in my_pets under its id",
			Run:         addPetRoundTrip,
		},
		{
			Name:        "successful_update_self_pet_info",
			Description: "updating an owned pet echoes the new name",
			Run:         updatePet(domain.PetInfo{Name: "Daisy", AnimalType: "husky", Age: domain.AgeOf(1)}),
		},
		{
			Name:        "update_self_pet_incorrect_data",
			Description: "updating an owned pet with symbols and a negative age is accepted",
			Run:         updatePet(domain.PetInfo{Name: "123456789", AnimalType: "±!@#$%^&*~", Age: domain.AgeOf(-987654321)}),
		},
		{
			Name:        "update_self_pet_without_data",
			Description: "updating an owned pet with empty fields is accepted",
			Run:         updatePet(domain.PetInfo{}),
		},
		{
			Name:        "set_photo_for_self_pet",
			Description: "attaching a photo to an owned pet returns 200",
			Run:         setPhoto,
		},
		{
			Name:        "successful_delete_self_pet",
			Description: "deleting an owned pet returns 200 and removes it from my_pets",
			Run:         deletePet(1, FirstOwned()),
		},
		{
			Name:        "delete_self_pet_at_position",
			Description: "deleting the third owned pet returns 200 and removes it from my_pets",
			Run:         deletePet(3, OwnedAt(2)),
		},
		{
			Name:        "delete_self_deleted_pet",
			Description: "deleting an already deleted pet still returns 200",
			Run:         deleteTwice,
		},
	}
}

func apiKeyAccepted(ctx context.Context, env Env) error {
	_, err := env.authenticate(ctx)
	return err
}

func apiKeyRejected(ctx context.Context, env Env) error {
	creds := env.Credentials
	creds.Password += "-wrong"
	resp, err := env.API.GetAPIKey(ctx, creds)
	if err != nil {
		return err
	}
	if err := expectStatus("wrong password", resp, http.StatusForbidden); err != nil {
		return err
	}
	if resp.Decoded() && resp.Body.Key != "" {
		return &AssertionError{Step: "wrong password key", Expected: "no key", Actual: "key issued"}
	}
	return nil
}

func listNonEmpty(filter domain.Filter) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		key, err := env.authenticate(ctx)
		if err != nil {
			return err
		}
		if _, err := env.ensureOwned(ctx, key, 1); err != nil {
			return err
		}
		list, err := env.listPets(ctx, key, filter)
		if err != nil {
			return err
		}
		if len(list.Pets) == 0 {
			return &AssertionError{Step: fmt.Sprintf("list pets (filter=%q) size", filter), Expected: "> 0", Actual: 0}
		}
		return nil
	}
}

func addPet(in petInput) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		_, err := createPet(ctx, env, in)
		return err
	}
}

func addPetWithoutPhoto(in petInput) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		pet, err := createPet(ctx, env, in)
		if err != nil {
			return err
		}
		if pet.HasPhoto() {
			return &AssertionError{Step: "add pet photo", Expected: "no photo", Actual: "photo attached"}
		}
		return nil
	}
}

func createPet(ctx context.Context, env Env, in petInput) (domain.Pet, error) {
	key, err := env.authenticate(ctx)
	if err != nil {
		return domain.Pet{}, err
	}
	pet, err := env.newPet(in)
	if err != nil {
		return domain.Pet{}, err
	}
	resp, err := env.API.AddNewPet(ctx, key, pet)
	if err != nil {
		return domain.Pet{}, err
	}
	if err := expectStatus("add pet", resp, http.StatusOK); err != nil {
		return domain.Pet{}, err
	}
	if err := expectName("add pet", resp, in.name); err != nil {
		return domain.Pet{}, err
	}
	return *resp.Body, nil
}

func addPetRoundTrip(ctx context.Context, env Env) error {
	in := petInput{name: "Rex-" + uuid.NewString()[:8], animalType: "terrier", age: "4", photo: PhotoDog}
	created, err := createPet(ctx, env, in)
	if err != nil {
		return err
	}
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	owned, err := env.ownedPets(ctx, key)
	if err != nil {
		return err
	}
	listedID, err := OwnedNamed(in.name)(owned)
	if err != nil {
		return &AssertionError{Step: "round trip", Expected: fmt.Sprintf("pet %q in my_pets", in.name), Actual: "missing"}
	}
	if created.ID != "" && listedID != created.ID {
		return &AssertionError{Step: "round trip id", Expected: created.ID, Actual: listedID}
	}
	return nil
}

func updatePet(info domain.PetInfo) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		key, err := env.authenticate(ctx)
		if err != nil {
			return err
		}
		petID, err := env.requireOwned(ctx, key, FirstOwned())
		if err != nil {
			return err
		}
		resp, err := env.API.UpdatePetInfo(ctx, key, petID, info)
		if err != nil {
			return err
		}
		if err := expectStatus("update pet", resp, http.StatusOK); err != nil {
			return err
		}
		return expectName("update pet", resp, info.Name)
	}
}

func setPhoto(ctx context.Context, env Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	owned, err := env.ensureOwned(ctx, key, 1)
	if err != nil {
		return err
	}
	petID, err := FirstOwned()(owned)
	if err != nil {
		return err
	}
	photo, err := env.Fixtures.Photo(PhotoPomeranian)
	if err != nil {
		return err
	}
	resp, err := env.API.SetPetPhoto(ctx, key, petID, photo)
	if err != nil {
		return err
	}
	if err := expectStatus("set photo", resp, http.StatusOK); err != nil {
		return err
	}
	if resp.Decoded() && !resp.Body.HasPhoto() {
		return &AssertionError{Step: "set photo", Expected: "photo attached", Actual: "no photo"}
	}
	return nil
}

func deletePet(need int, selector Selector) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		key, err := env.authenticate(ctx)
		if err != nil {
			return err
		}
		owned, err := env.ensureOwned(ctx, key, need)
		if err != nil {
			return err
		}
		petID, err := selector(owned)
		if err != nil {
			return err
		}
		return deleteAndVerify(ctx, env, key, petID, "delete pet")
	}
}

func deleteTwice(ctx context.Context, env Env) error {
	key, err := env.authenticate(ctx)
	if err != nil {
		return err
	}
	owned, err := env.ensureOwned(ctx, key, 1)
	if err != nil {
		return err
	}
	petID, err := FirstOwned()(owned)
	if err != nil {
		return err
	}
	if err := deleteAndVerify(ctx, env, key, petID, "first delete"); err != nil {
		return err
	}
	return deleteAndVerify(ctx, env, key, petID, "repeated delete")
}

func deleteAndVerify(ctx context.Context, env Env, key, petID, step string) error {
	resp, err := env.API.DeletePet(ctx, key, petID)
	if err != nil {
		return err
	}
	owned, err := env.ownedPets(ctx, key)
	if err != nil {
		return err
	}
	if err := expectStatus(step, resp, http.StatusOK); err != nil {
		return err
	}
	return expectAbsent(step, owned, petID)
}
