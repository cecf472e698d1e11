//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/client"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	pacttest "github.com/Apurer/petfriends-api-tests/test/pact"
)

func TestPetFriendsSuiteContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	example := pacttest.ExamplePet()
	petMatcher := matchers.Map{
		"id":          matchers.Like(example["id"]),
		"name":        matchers.Like(example["name"]),
		"animal_type": matchers.Like(example["animal_type"]),
		"age":         matchers.Like(example["age"]),
	}

	pact.AddInteraction().
		Given(pacttest.StateAccountExists).
		UponReceiving("a key request with valid credentials").
		WithRequest("GET", "/api/key", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("email", matchers.S(pacttest.Email))
			b.Header("password", matchers.S(pacttest.Password))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"key": matchers.Like(pacttest.AuthKey)})
		})

	pact.AddInteraction().
		Given(pacttest.StateAccountExists).
		UponReceiving("a key request with a wrong password").
		WithRequest("GET", "/api/key", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("email", matchers.S(pacttest.Email))
			b.Header("password", matchers.S(pacttest.WrongPassword))
		}).
		WillRespondWith(http.StatusForbidden)

	pact.AddInteraction().
		Given(pacttest.StateAccountOwnsPet).
		UponReceiving("a request for my pets").
		WithRequest("GET", "/api/pets", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("auth_key", matchers.S(pacttest.AuthKey))
			b.Query("filter", matchers.S(string(domain.FilterMyPets)))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"pets": matchers.EachLike(petMatcher, 1)})
		})

	pact.AddInteraction().
		Given(pacttest.StateAccountExists).
		UponReceiving("a request to create a pet without a photo").
		WithRequest("POST", "/api/create_pet_simple", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("auth_key", matchers.S(pacttest.AuthKey))
			b.Header("Content-Type", matchers.S("application/x-www-form-urlencoded"))
			b.Body("application/x-www-form-urlencoded", []byte("age=3&animal_type=beagle&name=Max"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":          matchers.Like("generated-id"),
				"name":        matchers.S("Max"),
				"animal_type": matchers.S("beagle"),
				"age":         matchers.S("3"),
				"pet_photo":   matchers.S(""),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAccountOwnsPet).
		UponReceiving("a request to update an owned pet").
		WithRequest("PUT", "/api/pets/"+pacttest.OwnedPetID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("auth_key", matchers.S(pacttest.AuthKey))
			b.Header("Content-Type", matchers.S("application/x-www-form-urlencoded"))
			b.Body("application/x-www-form-urlencoded", []byte("age=1&animal_type=husky&name=Daisy"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":   matchers.S(pacttest.OwnedPetID),
				"name": matchers.S("Daisy"),
				"age":  matchers.S("1"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAccountOwnsPet).
		UponReceiving("a request to delete an owned pet").
		WithRequest("DELETE", "/api/pets/"+pacttest.OwnedPetID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("auth_key", matchers.S(pacttest.AuthKey))
		}).
		WillRespondWith(http.StatusOK)

	pact.AddInteraction().
		Given(pacttest.StateAccountExists).
		UponReceiving("a request to delete an unknown pet").
		WithRequest("DELETE", "/api/pets/"+pacttest.MissingPetID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("auth_key", matchers.S(pacttest.AuthKey))
		}).
		WillRespondWith(http.StatusOK)

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		api, err := newClient(config)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		key, err := api.GetAPIKey(ctx, domain.Credentials{Email: pacttest.Email, Password: pacttest.Password})
		if err != nil {
			return fmt.Errorf("get api key: %w", err)
		}
		if key.StatusCode != http.StatusOK || !key.Decoded() || key.Body.Key == "" {
			return fmt.Errorf("expected a key, got %d %s", key.StatusCode, key.Text())
		}

		rejected, err := api.GetAPIKey(ctx, domain.Credentials{Email: pacttest.Email, Password: pacttest.WrongPassword})
		if err != nil {
			return fmt.Errorf("get api key with wrong password: %w", err)
		}
		if rejected.StatusCode != http.StatusForbidden {
			return fmt.Errorf("expected 403 for wrong password, got %d", rejected.StatusCode)
		}

		owned, err := api.ListPets(ctx, pacttest.AuthKey, domain.FilterMyPets)
		if err != nil {
			return fmt.Errorf("list pets: %w", err)
		}
		if !owned.Decoded() || len(owned.Body.Pets) == 0 {
			return fmt.Errorf("expected owned pets, got %s", owned.Text())
		}

		created, err := api.AddNewPet(ctx, pacttest.AuthKey, domain.NewPet{Name: "Max", AnimalType: "beagle", Age: "3"})
		if err != nil {
			return fmt.Errorf("add new pet: %w", err)
		}
		if !created.Decoded() || created.Body.Name != "Max" || created.Body.HasPhoto() {
			return fmt.Errorf("unexpected created pet %s", created.Text())
		}

		updated, err := api.UpdatePetInfo(ctx, pacttest.AuthKey, pacttest.OwnedPetID, domain.PetInfo{Name: "Daisy", AnimalType: "husky", Age: domain.AgeOf(1)})
		if err != nil {
			return fmt.Errorf("update pet info: %w", err)
		}
		if !updated.Decoded() || updated.Body.Name != "Daisy" {
			return fmt.Errorf("unexpected updated pet %s", updated.Text())
		}

		for _, id := range []string{pacttest.OwnedPetID, pacttest.MissingPetID} {
			deleted, err := api.DeletePet(ctx, pacttest.AuthKey, id)
			if err != nil {
				return fmt.Errorf("delete pet %s: %w", id, err)
			}
			if deleted.StatusCode != http.StatusOK {
				return fmt.Errorf("expected 200 deleting %s, got %d", id, deleted.StatusCode)
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func newClient(config pactconsumer.MockServerConfig) (*client.Client, error) {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return client.New(fmt.Sprintf("http://%s:%d", host, config.Port),
		client.WithHTTPClient(&http.Client{Transport: transport, Timeout: 10 * time.Second}),
	)
}
