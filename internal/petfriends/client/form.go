package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// PhotoField is the form part name the service reads images from.
const PhotoField = "pet_photo"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func formBody(fields [][2]string) ([]byte, string) {
	values := url.Values{}
	for _, field := range fields {
		values.Add(field[0], field[1])
	}
	return []byte(values.Encode()), "application/x-www-form-urlencoded"
}

// multipartBody writes text fields first and the photo last, as browsers do.
func multipartBody(fields [][2]string, photo *domain.Photo) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field[0], err)
		}
	}
	if photo != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(PhotoField), quoteEscaper.Replace(photo.Filename)))
		contentType := photo.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create photo part: %w", err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, "", fmt.Errorf("write photo part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
