// internal/common/adobe/umapi.go
package adobe

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"adobe-license-monitor/internal/common/config"
	"adobe-license-monitor/internal/common/httpclient"
	"adobe-license-monitor/internal/common/logger"
)

// tokenScope is what IMS expects as a single comma-joined scope value.
// Kept as one element so the oauth2 package does not space-join it apart.
const tokenScope = "openid,AdobeID,user_management_sdk"

// User represents a user record from the User Management API.
type User struct {
	ID       string   `json:"id,omitempty"`
	Email    string   `json:"email,omitempty"`
	Username string   `json:"username,omitempty"`
	Status   string   `json:"status,omitempty"`
	Type     string   `json:"type,omitempty"`
	Groups   []string `json:"groups,omitempty"`
}

// usersPage is one page of the paginated users listing.
type usersPage struct {
	LastPage bool   `json:"lastPage"`
	Result   string `json:"result,omitempty"`
	Users    []User `json:"users"`
}

// UMAPIClient provides access to Adobe's User Management API.
type UMAPIClient struct {
	baseURL     string
	orgID       string
	clientID    string
	accessToken string
	oauth       *clientcredentials.Config
	http        *httpclient.Client
	logger      logger.Logger
}

func NewUMAPIClient(cfg config.AdobeConfig, hc *httpclient.Client, log logger.Logger) *UMAPIClient {
	c := &UMAPIClient{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		orgID:       cfg.OrgID,
		clientID:    cfg.ClientID,
		accessToken: cfg.AccessToken,
		http:        hc,
		logger:      log,
	}

	if !cfg.HasStaticToken() {
		c.oauth = &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       []string{tokenScope},
			AuthStyle:    oauth2.AuthStyleInParams,
		}
	}

	return c
}

// BearerToken returns the configured static token, or fetches one via the
// client-credentials grant.
func (c *UMAPIClient) BearerToken(ctx context.Context) (string, error) {
	if c.accessToken != "" {
		return c.accessToken, nil
	}

	c.logger.Info("no static access token configured, requesting a new one", nil)

	tok, err := c.oauth.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch access token: %w", err)
	}
	return tok.AccessToken, nil
}

// ListUsers retrieves all users in the organization, following pagination
// until the API reports the last page.
func (c *UMAPIClient) ListUsers(ctx context.Context) ([]User, error) {
	token, err := c.BearerToken(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":        "application/json",
		"x-api-key":     c.clientID,
		"Authorization": "Bearer " + token,
	}

	var users []User
	for page := 0; ; page++ {
		url := fmt.Sprintf("%s/%s/%d", c.baseURL, c.orgID, page)

		var resp usersPage
		if err := c.http.GetJSON(ctx, url, headers, &resp); err != nil {
			return nil, fmt.Errorf("failed to retrieve users page %d: %w", page, err)
		}

		users = append(users, resp.Users...)
		if resp.LastPage {
			break
		}
	}

	c.logger.Info("retrieved organization users", map[string]interface{}{
		"count": len(users),
	})

	return users, nil
}
