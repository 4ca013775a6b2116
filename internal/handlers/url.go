package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"code.cloudfoundry.org/clock"
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/fcc-microservices/internal/analytics"
	"github.com/serroba/fcc-microservices/internal/messaging"
	"github.com/serroba/fcc-microservices/internal/shortener"
	"go.uber.org/zap"
)

const (
	msgInvalidURL   = "invalid url"
	msgSaveFailed   = "could not save url"
	msgCodeNotFound = "The short url does not exist!"

	maxFormMemory = 1 << 20
)

var errMissingBoundary = errors.New("multipart body without boundary")

// URLService is the shortener behaviour the HTTP layer depends on.
type URLService interface {
	Shorten(ctx context.Context, rawURL string) (shortener.ShortenResult, error)
	Resolve(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error)
}

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service            URLService
	baseURL            string
	clock              clock.Clock
	publishURLCreated  messaging.Publish[analytics.URLCreatedEvent]
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent]
	logger             *zap.Logger
}

// NewURLHandler creates a new URL handler. baseURL prefixes the Location of
// created short URLs.
func NewURLHandler(
	service URLService,
	baseURL string,
	clk clock.Clock,
	publishURLCreated messaging.Publish[analytics.URLCreatedEvent],
	publishURLAccessed messaging.Publish[analytics.URLAccessedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:            service,
		baseURL:            baseURL,
		clock:              clk,
		publishURLCreated:  publishURLCreated,
		publishURLAccessed: publishURLAccessed,
		logger:             logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	rawURL, err := decodeURLField(req.ContentType, req.RawBody)
	if err != nil {
		h.logger.Debug("undecodable shorten request", zap.Error(err))

		return nil, NewErrorBody(http.StatusBadRequest, msgInvalidURL)
	}

	result, err := h.service.Shorten(ctx, rawURL)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			h.logger.Debug("rejected url", zap.String("url", rawURL), zap.Error(err))

			return nil, NewErrorBody(http.StatusBadRequest, msgInvalidURL)
		}

		h.logger.Error("failed to shorten url", zap.String("url", rawURL), zap.Error(err))

		return nil, NewErrorBody(http.StatusInternalServerError, msgSaveFailed)
	}

	shortURL := result.ShortURL

	if result.Created {
		meta := RequestMetaFromContext(ctx)
		event := &analytics.URLCreatedEvent{
			Code:        string(shortURL.Code),
			OriginalURL: shortURL.OriginalURL,
			CreatedAt:   shortURL.CreatedAt,
			ClientIP:    meta.ClientIP,
			UserAgent:   meta.UserAgent,
		}

		if err := h.publishURLCreated(ctx, event); err != nil {
			h.logger.Error("failed to publish analytics event",
				zap.String("code", event.Code),
				zap.Error(err),
			)
		}
	}

	resp := &ShortenResponse{}
	resp.Location = h.baseURL + "/api/shorturl/" + url.PathEscape(string(shortURL.Code))
	resp.Body.OriginalURL = shortURL.OriginalURL
	resp.Body.ShortURL = string(shortURL.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	shortURL, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			h.logger.Debug("unknown short code", zap.String("code", req.Code))

			return nil, NewMessageBody(http.StatusNotFound, msgCodeNotFound)
		}

		h.logger.Error("failed to resolve short code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLAccessedEvent{
		Code:       req.Code,
		AccessedAt: h.clock.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishURLAccessed(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: shortURL.OriginalURL,
	}, nil
}

// decodeURLField extracts the url field from a form, multipart or JSON body.
func decodeURLField(contentType string, body []byte) (string, error) {
	var (
		mediaType string
		params    map[string]string
	)

	if contentType != "" {
		var err error

		mediaType, params, err = mime.ParseMediaType(contentType)
		if err != nil {
			return "", err
		}
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "", err
		}

		return values.Get("url"), nil
	case "multipart/form-data":
		return decodeMultipartURL(body, params["boundary"])
	}

	if len(body) == 0 {
		return "", nil
	}

	var payload struct {
		URL string `json:"url"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}

	return payload.URL, nil
}

// decodeMultipartURL reads the url value from a multipart/form-data body.
// File parts are ignored.
func decodeMultipartURL(body []byte, boundary string) (string, error) {
	if boundary == "" {
		return "", errMissingBoundary
	}

	form, err := multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxFormMemory)
	if err != nil {
		return "", err
	}
	defer func() { _ = form.RemoveAll() }()

	if values := form.Value["url"]; len(values) > 0 {
		return values[0], nil
	}

	return "", nil
}
