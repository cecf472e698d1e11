package scenarios

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// Fixture image names.
const (
	PhotoDog        = "dog.jpg"
	PhotoPoodle     = "пудель.jpg"
	PhotoPomeranian = "pomeranian.jpg"
)

//go:embed images
var embeddedImages embed.FS

// Fixtures resolves fixture images from a directory or, by default, from the
// images embedded in this package.
type Fixtures struct {
	embedded fs.FS
	dir      string
}

// NewFixtures serves images from dir, or the embedded set when dir is empty.
func NewFixtures(dir string) *Fixtures {
	if dir != "" {
		return &Fixtures{dir: dir}
	}
	sub, err := fs.Sub(embeddedImages, "images")
	if err != nil {
		panic(fmt.Sprintf("embedded fixture images: %v", err))
	}
	return &Fixtures{embedded: sub}
}

// Photo loads a fixture image by file name.
func (f *Fixtures) Photo(name string) (*domain.Photo, error) {
	if f == nil || (f.dir == "" && f.embedded == nil) {
		f = NewFixtures("")
	}
	if f.dir != "" {
		return domain.LoadPhoto(filepath.Join(f.dir, name))
	}
	data, err := fs.ReadFile(f.embedded, name)
	if err != nil {
		return nil, fmt.Errorf("load fixture images/%s: %w", name, err)
	}
	return domain.NewPhoto(name, data)
}
