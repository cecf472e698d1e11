package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var ErrEmptyPhoto = errors.New("photo has no content")

// Photo is an image uploaded as the pet_photo form part.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewPhoto builds a photo, sniffing the content type when the extension is unknown.
func NewPhoto(filename string, data []byte) (*Photo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPhoto
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Photo{
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}, nil
}

// LoadPhoto reads a photo from disk.
func LoadPhoto(path string) (*Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo %s: %w", path, err)
	}
	return NewPhoto(path, data)
}

// DataURI encodes the photo the way the service echoes it back in pet_photo.
func (p *Photo) DataURI() string {
	if p == nil {
		return ""
	}
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// NewPet is the creation request. Photo is optional.
type NewPet struct {
	Name       string
	AnimalType string
	Age        Age
	Photo      *Photo
}

// PetInfo carries the mutable text fields of a pet.
type PetInfo struct {
	Name       string
	AnimalType string
	Age        Age
}
