package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/serroba/fcc-microservices/internal/handlers"
	"github.com/serroba/fcc-microservices/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(service handlers.URLService, pubs publishers) *handlers.URLHandler {
	return handlers.NewURLHandler(
		service,
		"http://localhost:8888",
		fakeclock.NewFakeClock(testNow),
		pubs.created.publish(),
		pubs.accessed.publish(),
		zap.NewNop(),
	)
}

func jsonRequest(body string) *handlers.ShortenRequest {
	return &handlers.ShortenRequest{ContentType: "application/json", RawBody: []byte(body)}
}

func multipartBody(t *testing.T, field, value string) (string, []byte) {
	t.Helper()

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField(field, value))
	require.NoError(t, writer.Close())

	return writer.FormDataContentType(), buf.Bytes()
}

func TestCreateShortURL(t *testing.T) {
	created := shortener.ShortenResult{
		ShortURL: &shortener.ShortURL{Code: "abc123", OriginalURL: testURL, CreatedAt: testNow},
		Created:  true,
	}

	t.Run("returns code and location for a json body", func(t *testing.T) {
		service := &mockService{shortenResult: created}
		handler := newTestHandler(service, newPublishers(nil))

		resp, err := handler.CreateShortURL(context.Background(), jsonRequest(`{"url":"https://example.com"}`))

		require.NoError(t, err)
		assert.Equal(t, "abc123", resp.Body.ShortURL)
		assert.Equal(t, testURL, resp.Body.OriginalURL)
		assert.Equal(t, "http://localhost:8888/api/shorturl/abc123", resp.Location)
		assert.Equal(t, []string{testURL}, service.shortenedURLs)
	})

	t.Run("accepts form encoded bodies", func(t *testing.T) {
		service := &mockService{shortenResult: created}
		handler := newTestHandler(service, newPublishers(nil))

		req := &handlers.ShortenRequest{
			ContentType: "application/x-www-form-urlencoded; charset=utf-8",
			RawBody:     []byte("url=https%3A%2F%2Fexample.com%2Fa%3Fq%3D1"),
		}

		_, err := handler.CreateShortURL(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a?q=1"}, service.shortenedURLs)
	})

	t.Run("accepts multipart form bodies", func(t *testing.T) {
		service := &mockService{shortenResult: created}
		handler := newTestHandler(service, newPublishers(nil))

		contentType, body := multipartBody(t, "url", "https://example.com/a")

		_, err := handler.CreateShortURL(context.Background(), &handlers.ShortenRequest{
			ContentType: contentType,
			RawBody:     body,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a"}, service.shortenedURLs)
	})

	t.Run("maps multipart body without boundary to 400", func(t *testing.T) {
		service := &mockService{}
		handler := newTestHandler(service, newPublishers(nil))

		_, err := handler.CreateShortURL(context.Background(), &handlers.ShortenRequest{
			ContentType: "multipart/form-data",
			RawBody:     []byte("url=https://example.com"),
		})

		var body *handlers.ErrorBody
		require.ErrorAs(t, err, &body)
		assert.Equal(t, http.StatusBadRequest, body.GetStatus())
		assert.Empty(t, service.shortenedURLs)
	})

	t.Run("publishes created event only for new records", func(t *testing.T) {
		pubs := newPublishers(nil)
		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
		})

		_, err := newTestHandler(&mockService{shortenResult: created}, pubs).
			CreateShortURL(ctx, jsonRequest(`{"url":"https://example.com"}`))
		require.NoError(t, err)

		existing := created
		existing.Created = false

		_, err = newTestHandler(&mockService{shortenResult: existing}, pubs).
			CreateShortURL(ctx, jsonRequest(`{"url":"https://example.com"}`))
		require.NoError(t, err)

		require.Len(t, pubs.created.events, 1)
		assert.Equal(t, "abc123", pubs.created.events[0].Code)
		assert.Equal(t, "192.168.1.1", pubs.created.events[0].ClientIP)
		assert.Equal(t, "TestAgent/1.0", pubs.created.events[0].UserAgent)
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		handler := newTestHandler(&mockService{shortenResult: created}, newPublishers(errMock))

		resp, err := handler.CreateShortURL(context.Background(), jsonRequest(`{"url":"https://example.com"}`))

		require.NoError(t, err)
		assert.Equal(t, "abc123", resp.Body.ShortURL)
	})

	t.Run("maps invalid url to 400", func(t *testing.T) {
		handler := newTestHandler(&mockService{shortenErr: shortener.ErrInvalidURL}, newPublishers(nil))

		resp, err := handler.CreateShortURL(context.Background(), jsonRequest(`{"url":"not-a-url"}`))

		assert.Nil(t, resp)

		var body *handlers.ErrorBody
		require.ErrorAs(t, err, &body)
		assert.Equal(t, http.StatusBadRequest, body.GetStatus())
		assert.Equal(t, "invalid url", body.Message)
	})

	t.Run("maps malformed body to 400 without calling the service", func(t *testing.T) {
		service := &mockService{}
		handler := newTestHandler(service, newPublishers(nil))

		_, err := handler.CreateShortURL(context.Background(), jsonRequest(`{"url":`))

		var body *handlers.ErrorBody
		require.ErrorAs(t, err, &body)
		assert.Equal(t, http.StatusBadRequest, body.GetStatus())
		assert.Empty(t, service.shortenedURLs)
	})

	t.Run("maps persistence failure to 500", func(t *testing.T) {
		handler := newTestHandler(&mockService{shortenErr: shortener.ErrPersistence}, newPublishers(nil))

		resp, err := handler.CreateShortURL(context.Background(), jsonRequest(`{"url":"https://example.com"}`))

		assert.Nil(t, resp)

		var body *handlers.ErrorBody
		require.ErrorAs(t, err, &body)
		assert.Equal(t, http.StatusInternalServerError, body.GetStatus())
		assert.Equal(t, "could not save url", body.Message)
	})
}

func TestRedirectToURL(t *testing.T) {
	stored := &shortener.ShortURL{Code: "abc123", OriginalURL: testURL, CreatedAt: testNow}

	t.Run("redirects to original url", func(t *testing.T) {
		handler := newTestHandler(&mockService{resolveResult: stored}, newPublishers(nil))

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "abc123"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, testURL, resp.Location)
	})

	t.Run("publishes access event with request metadata", func(t *testing.T) {
		pubs := newPublishers(nil)
		handler := newTestHandler(&mockService{resolveResult: stored}, pubs)
		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
			Referrer:  "https://referrer.com",
		})

		_, err := handler.RedirectToURL(ctx, &handlers.RedirectRequest{Code: "abc123"})

		require.NoError(t, err)
		require.Len(t, pubs.accessed.events, 1)

		event := pubs.accessed.events[0]
		assert.Equal(t, "abc123", event.Code)
		assert.Equal(t, testNow, event.AccessedAt)
		assert.Equal(t, "https://referrer.com", event.Referrer)
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		handler := newTestHandler(&mockService{resolveResult: stored}, newPublishers(errMock))

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "abc123"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
	})

	t.Run("returns 404 message when code not found", func(t *testing.T) {
		pubs := newPublishers(nil)
		handler := newTestHandler(&mockService{resolveErr: shortener.ErrNotFound}, pubs)

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "notfound"})

		assert.Nil(t, resp)

		var body *handlers.MessageBody
		require.ErrorAs(t, err, &body)
		assert.Equal(t, http.StatusNotFound, body.GetStatus())
		assert.Equal(t, "The short url does not exist!", body.Message)
		assert.Empty(t, pubs.accessed.events)
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		handler := newTestHandler(&mockService{resolveErr: errMock}, newPublishers(nil))

		resp, err := handler.RedirectToURL(context.Background(), &handlers.RedirectRequest{Code: "abc123"})

		assert.Nil(t, resp)
		require.Error(t, err)

		var body *handlers.MessageBody
		assert.NotErrorAs(t, err, &body)
	})
}

func TestContextWithRequestMeta(t *testing.T) {
	t.Run("adds and retrieves request metadata from context", func(t *testing.T) {
		meta := handlers.RequestMeta{
			ClientIP:       "192.168.1.1",
			UserAgent:      "TestAgent/1.0",
			Referrer:       "https://referrer.com",
			AcceptLanguage: "en-US",
		}
		ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

		assert.Equal(t, meta, handlers.RequestMetaFromContext(ctx))
	})

	t.Run("returns zero value when absent", func(t *testing.T) {
		assert.Equal(t, handlers.RequestMeta{}, handlers.RequestMetaFromContext(context.Background()))
	})
}
