// internal/common/adobe/umapi_test.go
package adobe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adobe-license-monitor/internal/common/config"
	"adobe-license-monitor/internal/common/httpclient"
	"adobe-license-monitor/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHTTPClient(t *testing.T) *httpclient.Client {
	t.Helper()
	return httpclient.NewClient(
		5*time.Second,
		4,
		time.Millisecond,
		0,
		logger.NewTestLogger(t),
		httpclient.WithSleep(func(time.Duration) {}),
	)
}

func createAdobeConfig(baseURL, tokenURL string) config.AdobeConfig {
	return config.AdobeConfig{
		BaseURL:      baseURL,
		TokenURL:     tokenURL,
		OrgID:        "1234567890@AdobeOrg",
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		Timeout:      5000,
	}
}

// newUsersServer serves pageCount pages of users and records request headers.
func newUsersServer(t *testing.T, pageCount int, usersPerPage int) (*httptest.Server, *[]http.Header) {
	t.Helper()
	var headers []http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Clone())

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		require.Len(t, parts, 2)
		assert.Equal(t, "1234567890@AdobeOrg", parts[0])

		page, err := strconv.Atoi(parts[1])
		require.NoError(t, err)
		require.Less(t, page, pageCount)

		users := make([]string, 0, usersPerPage)
		for i := 0; i < usersPerPage; i++ {
			users = append(users, fmt.Sprintf(
				`{"email":"user%d-%d@example.com","groups":["Default Acrobat Pro DC configuration"]}`,
				page, i,
			))
		}

		fmt.Fprintf(w, `{"lastPage":%t,"result":"success","users":[%s]}`,
			page == pageCount-1, strings.Join(users, ","))
	}))

	return server, &headers
}

// ==========================
// Token Tests
// ==========================

func TestBearerToken_StaticToken(t *testing.T) {
	cfg := createAdobeConfig("http://unused", "http://unused")
	cfg.AccessToken = "static-token"

	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	token, err := client.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)
}

func TestBearerToken_ClientCredentialsExchange(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "test-client-id", r.Form.Get("client_id"))
		assert.Equal(t, "test-client-secret", r.Form.Get("client_secret"))
		assert.Equal(t, "openid,AdobeID,user_management_sdk", r.Form.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"exchanged-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	cfg := createAdobeConfig("http://unused", tokenServer.URL)
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	token, err := client.BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchanged-token", token)
}

func TestBearerToken_ExchangeFailure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer tokenServer.Close()

	cfg := createAdobeConfig("http://unused", tokenServer.URL)
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	_, err := client.BearerToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch access token")
}

// ==========================
// Pagination Tests
// ==========================

func TestListUsers_AggregatesAllPages(t *testing.T) {
	server, headers := newUsersServer(t, 3, 2)
	defer server.Close()

	cfg := createAdobeConfig(server.URL, "http://unused")
	cfg.AccessToken = "static-token"
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	assert.Len(t, users, 6, "all pages' users are aggregated")
	assert.Len(t, *headers, 3, "fetch stops once lastPage is reported")
	assert.Equal(t, "user0-0@example.com", users[0].Email)
	assert.Equal(t, "user2-1@example.com", users[5].Email)
}

func TestListUsers_SetsAPIHeaders(t *testing.T) {
	server, headers := newUsersServer(t, 1, 1)
	defer server.Close()

	cfg := createAdobeConfig(server.URL, "http://unused")
	cfg.AccessToken = "static-token"
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	_, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, *headers, 1)
	h := (*headers)[0]
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, "test-client-id", h.Get("x-api-key"))
	assert.Equal(t, "Bearer static-token", h.Get("Authorization"))
}

func TestListUsers_SinglePage(t *testing.T) {
	server, _ := newUsersServer(t, 1, 3)
	defer server.Close()

	cfg := createAdobeConfig(server.URL, "http://unused")
	cfg.AccessToken = "static-token"
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestListUsers_PageFailureReturnsNoData(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Write([]byte(`{"lastPage":false,"users":[{"email":"a@example.com"}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := createAdobeConfig(server.URL, "http://unused")
	cfg.AccessToken = "static-token"
	client := NewUMAPIClient(cfg, createTestHTTPClient(t), logger.NewTestLogger(t))

	users, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve users page 1")
	assert.Nil(t, users, "a mid-run page failure yields no partial data")
}
