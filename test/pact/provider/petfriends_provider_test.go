//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/fake"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/fake/memory"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	pacttest "github.com/Apurer/petfriends-api-tests/test/pact"
)

func TestPetFriendsProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateAccountExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateAccountOwnsPet: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOwnedPet(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	store  *memory.Store
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	store := memory.NewStore()
	router := fake.NewServer(store).Router()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{store: store, server: server}
}

// reset leaves exactly the pact account with its fixed key and no pets.
func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	a.store.Reset()
	require.NoError(t, a.store.SaveAccount(context.Background(), &ports.Account{
		ID:       pacttest.AccountID,
		Email:    pacttest.Email,
		Password: pacttest.Password,
		Key:      pacttest.AuthKey,
	}))
}

func (a *contractProviderApp) seedOwnedPet(t testing.TB) {
	t.Helper()
	example := pacttest.ExamplePet()
	_, err := a.store.SavePet(context.Background(), &ports.StoredPet{
		ID:         pacttest.OwnedPetID,
		OwnerID:    pacttest.AccountID,
		Name:       example["name"].(string),
		AnimalType: example["animal_type"].(string),
		Age:        example["age"].(string),
	})
	require.NoError(t, err)
}
