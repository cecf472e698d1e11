package suites

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Apurer/petfriends-api-tests/internal/app/suite"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/scenarios"
	platformobservability "github.com/Apurer/petfriends-api-tests/internal/platform/observability"
)

// The live catalog only runs when PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD
// are exported or present in test/.env.
var _ = Describe("PetFriends API", Ordered, func() {
	var runner *scenarios.Runner

	BeforeAll(func() {
		cfg, err := suite.LoadConfig(envFile())
		Expect(err).NotTo(HaveOccurred())
		if err := cfg.Validate(); errors.Is(err, suite.ErrMissingCredentials) {
			Skip("PetFriends credentials not configured")
		}
		runner, err = suite.NewRunner(cfg, &platformobservability.Instruments{})
		Expect(err).NotTo(HaveOccurred())
	})

	for _, sc := range scenarios.Catalog() {
		It(sc.Description, Label(sc.Name), func(ctx SpecContext) {
			result, err := runner.RunOne(ctx, sc.Name)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Outcome).To(Equal(scenarios.OutcomePassed), "%s: %v", sc.Name, result.Err)
		})
	}
})

// envFile points at test/.env when it exists.
func envFile() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	path := filepath.Join(filepath.Dir(file), "..", "..", ".env")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
