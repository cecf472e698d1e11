package scenarios

import (
	"fmt"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// Selector picks a target pet id out of the caller's own listing.
type Selector func(owned domain.PetList) (string, error)

// FirstOwned selects the newest pet owned by the caller.
func FirstOwned() Selector {
	return OwnedAt(0)
}

// OwnedAt selects the owned pet at position index of the listing. Scenarios
// using it must establish index+1 owned pets first.
func OwnedAt(index int) Selector {
	return func(owned domain.PetList) (string, error) {
		if index < 0 || index >= len(owned.Pets) {
			return "", fmt.Errorf("%w: need at least %d owned pets, have %d", ErrPrecondition, index+1, len(owned.Pets))
		}
		return owned.Pets[index].ID, nil
	}
}

// OwnedNamed selects the first owned pet with the given name.
func OwnedNamed(name string) Selector {
	return func(owned domain.PetList) (string, error) {
		pet, ok := owned.FindByName(name)
		if !ok {
			return "", fmt.Errorf("%w: no owned pet named %q", ErrPrecondition, name)
		}
		return pet.ID, nil
	}
}
