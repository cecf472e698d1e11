package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Filter selects which pet collection the listing endpoint returns.
type Filter string

const (
	FilterAll    Filter = ""
	FilterMyPets Filter = "my_pets"
)

// Valid reports whether the filter is one the service understands.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterMyPets
}

// Credentials identify an account. They are passed through untouched.
type Credentials struct {
	Email    string
	Password string
}

// AuthKey is the response body of the key endpoint.
type AuthKey struct {
	Key string `json:"key"`
}

// Age is stored as text by the service but clients may send numbers.
type Age string

// AgeOf renders an integer age the way the service stores it.
func AgeOf(n int) Age {
	return Age(strconv.Itoa(n))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Age(n.String())
	return nil
}

// Pet is a record as returned by the service. The service assigns ID.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        Age    `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// HasPhoto reports whether a photo has been attached.
func (p Pet) HasPhoto() bool {
	return p.PetPhoto != ""
}

// PetList is the response body of the listing endpoint.
type PetList struct {
	Pets []Pet `json:"pets"`
}

// IDs returns pet identifiers in listing order.
func (l PetList) IDs() []string {
	ids := make([]string, 0, len(l.Pets))
	for _, p := range l.Pets {
		ids = append(ids, p.ID)
	}
	return ids
}

// Contains reports whether a pet with the id is listed.
func (l PetList) Contains(id string) bool {
	for _, p := range l.Pets {
		if p.ID == id {
			return true
		}
	}
	return false
}

// FindByName returns the first pet carrying the given name.
func (l PetList) FindByName(name string) (Pet, bool) {
	for _, p := range l.Pets {
		if p.Name == name {
			return p, true
		}
	}
	return Pet{}, false
}
