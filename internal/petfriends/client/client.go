package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/ports"
)

// DefaultBaseURL points at the public PetFriends deployment.
const DefaultBaseURL = "https://petfriends.skillfactory.ru"

const (
	headerEmail    = "email"
	headerPassword = "password"
	headerAuthKey  = "auth_key"
)

var _ ports.API = (*Client)(nil)

// Client issues PetFriends API calls and hands back status plus payload verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(userAgent)
	}
}

// WithTimeout bounds every request. Zero leaves the transport default in place.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("petfriends base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse petfriends base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("petfriends base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(parsed.String(), "/"),
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAPIKey exchanges credentials for an auth key.
func (c *Client) GetAPIKey(ctx context.Context, creds domain.Credentials) (*ports.Response[domain.AuthKey], error) {
	header := http.Header{}
	header.Set(headerEmail, creds.Email)
	header.Set(headerPassword, creds.Password)
	status, raw, err := c.do(ctx, request{method: http.MethodGet, path: "/api/key", header: header})
	if err != nil {
		return nil, fmt.Errorf("get api key: %w", err)
	}
	return decode[domain.AuthKey](status, raw), nil
}

// ListPets lists every pet or only the caller's, depending on filter.
func (c *Client) ListPets(ctx context.Context, authKey string, filter domain.Filter) (*ports.Response[domain.PetList], error) {
	query, err := queryParam("filter", string(filter))
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	status, raw, err := c.do(ctx, request{method: http.MethodGet, path: "/api/pets", query: query, header: authHeader(authKey)})
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return decode[domain.PetList](status, raw), nil
}

// AddNewPet creates a pet. Without a photo the simple endpoint is used.
func (c *Client) AddNewPet(ctx context.Context, authKey string, pet domain.NewPet) (*ports.Response[domain.Pet], error) {
	fields := petFields(pet.Name, pet.AnimalType, pet.Age)
	req := request{method: http.MethodPost, header: authHeader(authKey)}
	if pet.Photo == nil {
		req.path = "/api/create_pet_simple"
		req.body, req.contentType = formBody(fields)
	} else {
		body, contentType, err := multipartBody(fields, pet.Photo)
		if err != nil {
			return nil, fmt.Errorf("add new pet: %w", err)
		}
		req.path, req.body, req.contentType = "/api/pets", body, contentType
	}
	status, raw, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("add new pet: %w", err)
	}
	return decode[domain.Pet](status, raw), nil
}

// UpdatePetInfo replaces name, animal type and age. The photo is left alone.
func (c *Client) UpdatePetInfo(ctx context.Context, authKey, petID string, info domain.PetInfo) (*ports.Response[domain.Pet], error) {
	path, err := petPath("/api/pets/", petID)
	if err != nil {
		return nil, fmt.Errorf("update pet info: %w", err)
	}
	body, contentType := formBody(petFields(info.Name, info.AnimalType, info.Age))
	status, raw, err := c.do(ctx, request{method: http.MethodPut, path: path, header: authHeader(authKey), body: body, contentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("update pet info: %w", err)
	}
	return decode[domain.Pet](status, raw), nil
}

// DeletePet removes a pet. The service answers 200 for unknown ids too.
func (c *Client) DeletePet(ctx context.Context, authKey, petID string) (*ports.Response[ports.Object], error) {
	path, err := petPath("/api/pets/", petID)
	if err != nil {
		return nil, fmt.Errorf("delete pet: %w", err)
	}
	status, raw, err := c.do(ctx, request{method: http.MethodDelete, path: path, header: authHeader(authKey)})
	if err != nil {
		return nil, fmt.Errorf("delete pet: %w", err)
	}
	return decode[ports.Object](status, raw), nil
}

// SetPetPhoto attaches or replaces the photo of an existing pet.
func (c *Client) SetPetPhoto(ctx context.Context, authKey, petID string, photo *domain.Photo) (*ports.Response[domain.Pet], error) {
	if photo == nil {
		return nil, errors.New("set pet photo: photo is required")
	}
	path, err := petPath("/api/pets/set_photo/", petID)
	if err != nil {
		return nil, fmt.Errorf("set pet photo: %w", err)
	}
	body, contentType, err := multipartBody(nil, photo)
	if err != nil {
		return nil, fmt.Errorf("set pet photo: %w", err)
	}
	status, raw, err := c.do(ctx, request{method: http.MethodPost, path: path, header: authHeader(authKey), body: body, contentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("set pet photo: %w", err)
	}
	return decode[domain.Pet](status, raw), nil
}

type request struct {
	method      string
	path        string
	query       url.Values
	header      http.Header
	body        []byte
	contentType string
}

func (c *Client) do(ctx context.Context, r request) (int, []byte, error) {
	if c == nil || c.httpClient == nil {
		return 0, nil, errors.New("petfriends client not configured")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range r.header {
		req.Header[key] = values
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return res.StatusCode, raw, nil
}

// decode keeps the raw payload and fills Body when it is JSON of the expected shape.
func decode[T any](status int, raw []byte) *ports.Response[T] {
	resp := &ports.Response[T]{StatusCode: status, Raw: raw}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return resp
	}
	var body T
	if err := json.Unmarshal(trimmed, &body); err == nil {
		resp.Body = &body
	}
	return resp
}

// authHeader sets the key verbatim; the service uses an underscore header name.
func authHeader(authKey string) http.Header {
	return http.Header{headerAuthKey: []string{authKey}}
}

func queryParam(name, value string) (url.Values, error) {
	fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return nil, err
	}
	return url.ParseQuery(fragment)
}

func petPath(prefix, petID string) (string, error) {
	segment, err := runtime.StyleParamWithLocation("simple", false, "pet_id", runtime.ParamLocationPath, petID)
	if err != nil {
		return "", err
	}
	return prefix + segment, nil
}

func petFields(name, animalType string, age domain.Age) [][2]string {
	return [][2]string{
		{"name", name},
		{"animal_type", animalType},
		{"age", string(age)},
	}
}
