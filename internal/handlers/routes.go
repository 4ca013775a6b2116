package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// NewAPIConfig returns the huma configuration for the service. Response
// bodies carry no $schema links so they keep the exact FCC shapes.
func NewAPIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil

	return config
}

// RegisterRoutes registers the shortener and the FCC utility endpoints.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, timestampHandler *TimestampHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-short-url",
		Method:        http.MethodPost,
		Path:          "/api/shorturl",
		Summary:       "Create short URL",
		Description:   "Shortens a URL submitted as JSON or form field `url`. Repeated submissions return the same code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusOK,
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-short-url",
		Method:      http.MethodGet,
		Path:        "/api/shorturl/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
	}, urlHandler.RedirectToURL)

	huma.Register(api, huma.Operation{
		OperationID: "hello",
		Method:      http.MethodGet,
		Path:        "/api/hello",
		Summary:     "Greeting",
		Tags:        []string{"Misc"},
	}, Hello)

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/api/whoami",
		Summary:     "Describe the calling client",
		Tags:        []string{"Request Header Parser"},
	}, WhoAmI)

	huma.Register(api, huma.Operation{
		OperationID: "timestamp-now",
		Method:      http.MethodGet,
		Path:        "/api",
		Summary:     "Current timestamp",
		Tags:        []string{"Timestamp"},
	}, timestampHandler.Now)

	huma.Register(api, huma.Operation{
		OperationID: "timestamp-parse",
		Method:      http.MethodGet,
		Path:        "/api/{date}",
		Summary:     "Convert a date",
		Description: "Accepts Unix milliseconds or a date string and answers both representations.",
		Tags:        []string{"Timestamp"},
	}, timestampHandler.Parse)
}
