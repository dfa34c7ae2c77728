package client

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Found int `json:"found"`
}

func TestGetJSON_SendsParamsAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Go", r.URL.Query().Get("text"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-App-Id"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"found": 42}`))
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("text", "Go")
	params.Set("page", "3")
	headers := http.Header{}
	headers.Set("X-Api-App-Id", "secret")

	var out payload
	err := GetJSON(context.Background(), CreateHTTPClient(""), server.URL, params, headers, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Found)
}

func TestGetJSON_CustomUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom/2.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	headers := http.Header{}
	headers.Set("User-Agent", "custom/2.0")

	var out payload
	require.NoError(t, GetJSON(context.Background(), CreateHTTPClient(""), server.URL, nil, headers, &out))
}

func TestGetJSON_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "forbidden"}`))
	}))
	defer server.Close()

	var out payload
	err := GetJSON(context.Background(), CreateHTTPClient(""), server.URL, nil, nil, &out)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "403")
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	var out payload
	err := GetJSON(context.Background(), CreateHTTPClient(""), server.URL, nil, nil, &out)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestGetJSON_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(`{"found": 7}`))
	zw.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	// A bare transport leaves Content-Encoding untouched because the request
	// sets no Accept-Encoding of its own.
	httpClient := &http.Client{Transport: &http.Transport{DisableCompression: true}}

	var out payload
	require.NoError(t, GetJSON(context.Background(), httpClient, server.URL, nil, nil, &out))
	assert.Equal(t, 7, out.Found)
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out payload
	err := GetJSON(ctx, CreateHTTPClient(""), server.URL, nil, nil, &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateHTTPClient_Proxy(t *testing.T) {
	c := CreateHTTPClient("http://localhost:8080")
	transport, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.Proxy)

	req, _ := http.NewRequest(http.MethodGet, "https://api.hh.ru/vacancies", nil)
	proxy, err := transport.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", proxy.Host)

	assert.Nil(t, CreateHTTPClient("").Transport.(*http.Transport).Proxy)
}
