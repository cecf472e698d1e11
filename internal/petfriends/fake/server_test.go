package fake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/client"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/fake/memory"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
	apierrors "github.com/Apurer/petfriends-api-tests/internal/shared/errors"
)

var owner = domain.Credentials{Email: "owner@example.com", Password: "secret"}

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	server  *Server
	router  *gin.Engine
	api     *client.Client
	account *ports.Account
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	server := NewServer(memory.NewStore())
	account, err := server.SeedAccount(context.Background(), owner)
	require.NoError(t, err)
	router := server.Router()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	api, err := client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return fixture{server: server, router: router, api: api, account: account}
}

func jpeg(t *testing.T) *domain.Photo {
	t.Helper()
	photo, err := domain.NewPhoto("dog.jpg", []byte{0xff, 0xd8, 0xff, 0xd9})
	require.NoError(t, err)
	return photo
}

func TestGetAPIKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.api.GetAPIKey(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, f.account.Key, resp.Body.Key)

	resp, err = f.api.GetAPIKey(ctx, domain.Credentials{Email: owner.Email, Password: "nope"})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Empty(t, resp.Body.Key)

	resp, err = f.api.GetAPIKey(ctx, domain.Credentials{Email: "stranger@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSeedAccount_ReusesKeyForKnownEmail(t *testing.T) {
	f := newFixture(t)

	again, err := f.server.SeedAccount(context.Background(), domain.Credentials{Email: "OWNER@example.com", Password: "rotated"})
	require.NoError(t, err)
	require.Equal(t, f.account.ID, again.ID)
	require.Equal(t, f.account.Key, again.Key)

	_, err = f.server.SeedAccount(context.Background(), domain.Credentials{})
	require.Error(t, err)
}

func TestAuthKeyRequired(t *testing.T) {
	f := newFixture(t)

	resp, err := f.api.ListPets(context.Background(), "", domain.FilterAll)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = f.api.ListPets(context.Background(), "bogus", domain.FilterAll)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListPets_RejectsUnknownFilter(t *testing.T) {
	f := newFixture(t)

	resp, err := f.api.ListPets(context.Background(), f.account.Key, domain.Filter("friends"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, resp.Text(), "filter")
}

func TestListPets_MyPetsOnlyListsOwnedPets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other, err := f.server.SeedAccount(ctx, domain.Credentials{Email: "other@example.com", Password: "x"})
	require.NoError(t, err)
	foreign, err := f.server.SeedPet(ctx, other, domain.PetInfo{Name: "Stray"})
	require.NoError(t, err)
	mine, err := f.server.SeedPet(ctx, f.account, domain.PetInfo{Name: "Bella"})
	require.NoError(t, err)

	all, err := f.api.ListPets(ctx, f.account.Key, domain.FilterAll)
	require.NoError(t, err)
	require.True(t, all.Body.Contains(foreign.ID))
	require.True(t, all.Body.Contains(mine.ID))

	owned, err := f.api.ListPets(ctx, f.account.Key, domain.FilterMyPets)
	require.NoError(t, err)
	require.Equal(t, []string{mine.ID}, owned.Body.IDs())
}

func TestAddNewPet_WithAndWithoutPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withPhoto, err := f.api.AddNewPet(ctx, f.account.Key, domain.NewPet{Name: "Bella", AnimalType: "husky", Age: "0", Photo: jpeg(t)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, withPhoto.StatusCode)
	require.Equal(t, "Bella", withPhoto.Body.Name)
	require.Equal(t, domain.Age("0"), withPhoto.Body.Age)
	require.True(t, strings.HasPrefix(withPhoto.Body.PetPhoto, "data:image/jpeg;base64,"))
	require.Equal(t, f.account.ID, withPhoto.Body.UserID)

	plain, err := f.api.AddNewPet(ctx, f.account.Key, domain.NewPet{Name: "Max", AnimalType: "beagle", Age: "3"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, plain.StatusCode)
	require.False(t, plain.Body.HasPhoto())

	list, err := f.api.ListPets(ctx, f.account.Key, domain.FilterMyPets)
	require.NoError(t, err)
	require.Equal(t, []string{plain.Body.ID, withPhoto.Body.ID}, list.Body.IDs())
}

func TestAddPet_UrlencodedBodyOnPhotoEndpoint(t *testing.T) {
	f := newFixture(t)
	form := url.Values{"name": {"Rex"}, "animal_type": {"dog"}, "age": {"5"}}
	req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("auth_key", f.account.Key)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Rex"`)
}

func TestUpdatePetInfo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pet, err := f.server.SeedPet(ctx, f.account, domain.PetInfo{Name: "Bella", AnimalType: "husky", Age: "2"})
	require.NoError(t, err)

	resp, err := f.api.UpdatePetInfo(ctx, f.account.Key, pet.ID, domain.PetInfo{Name: "Daisy", AnimalType: "husky", Age: domain.AgeOf(-987654321)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Daisy", resp.Body.Name)
	require.Equal(t, domain.Age("-987654321"), resp.Body.Age)
	require.Equal(t, pet.CreatedAt, resp.Body.CreatedAt)

	missing, err := f.api.UpdatePetInfo(ctx, f.account.Key, "missing", domain.PetInfo{Name: "x"})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(missing.Raw, &problem))
	require.Equal(t, apierrors.TypeNotFound, problem.Type)
	require.Equal(t, "pet", problem.Extensions["resourceType"])
	require.Equal(t, "missing", problem.Extensions["identifier"])
}

func TestForeignPetsAreForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other, err := f.server.SeedAccount(ctx, domain.Credentials{Email: "other@example.com", Password: "x"})
	require.NoError(t, err)
	foreign, err := f.server.SeedPet(ctx, other, domain.PetInfo{Name: "Stray"})
	require.NoError(t, err)

	update, err := f.api.UpdatePetInfo(ctx, f.account.Key, foreign.ID, domain.PetInfo{Name: "Mine"})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, update.StatusCode)

	photo, err := f.api.SetPetPhoto(ctx, f.account.Key, foreign.ID, jpeg(t))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, photo.StatusCode)

	del, err := f.api.DeletePet(ctx, f.account.Key, foreign.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, del.StatusCode)
}

func TestDeletePet_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pet, err := f.server.SeedPet(ctx, f.account, domain.PetInfo{Name: "Bella"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := f.api.DeletePet(ctx, f.account.Key, pet.ID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	list, err := f.api.ListPets(ctx, f.account.Key, domain.FilterMyPets)
	require.NoError(t, err)
	require.False(t, list.Body.Contains(pet.ID))
}

func TestSetPetPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pet, err := f.server.SeedPet(ctx, f.account, domain.PetInfo{Name: "Bella"})
	require.NoError(t, err)
	require.False(t, pet.HasPhoto())

	resp, err := f.api.SetPetPhoto(ctx, f.account.Key, pet.ID, jpeg(t))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, resp.Body.HasPhoto())
	require.Equal(t, "Bella", resp.Body.Name)
}

func TestSetPetPhoto_RequiresFile(t *testing.T) {
	f := newFixture(t)
	pet, err := f.server.SeedPet(context.Background(), f.account, domain.PetInfo{Name: "Bella"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/pets/set_photo/"+pet.ID, strings.NewReader(""))
	req.Header.Set("auth_key", f.account.Key)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddNewPet_RejectsOversizedPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	data := make([]byte, maxPhotoBytes+1)
	copy(data, []byte{0xff, 0xd8, 0xff})
	photo, err := domain.NewPhoto("huge.jpg", data)
	require.NoError(t, err)

	resp, err := f.api.AddNewPet(ctx, f.account.Key, domain.NewPet{Name: "Bella", AnimalType: "husky", Age: "1", Photo: photo})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, resp.Text(), errPhotoTooLarge.Error())

	list, err := f.api.ListPets(ctx, f.account.Key, domain.FilterMyPets)
	require.NoError(t, err)
	require.Empty(t, list.Body.Pets)
}
