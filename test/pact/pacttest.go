//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "petfriends-api"
	ConsumerName = "petfriends-suite"

	StateAccountExists  = "account pact@example.com exists"
	StateAccountOwnsPet = "account pact@example.com owns pet pact-pet-1"
)

const (
	AccountID     = "pact-account"
	Email         = "pact@example.com"
	Password      = "pact-pass"
	WrongPassword = "pact-pass-wrong"
	AuthKey       = "ea738148a1f19838e1c5d1413877f3691a3731380e733e877b0ae729"

	OwnedPetID   = "pact-pet-1"
	MissingPetID = "pact-pet-missing"
)

// ExamplePet is the pet the owned-pet state seeds.
func ExamplePet() map[string]any {
	return map[string]any{
		"id":          OwnedPetID,
		"name":        "Bella",
		"animal_type": "husky",
		"age":         "2",
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the suite consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
