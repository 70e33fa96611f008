package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v71/github"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/ratelimit"
)

// APISource fetches GET /rate_limit from the GitHub REST API. The response
// body is kept verbatim so bucket order matches what GitHub sent.
type APISource struct {
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise.
	BaseURL string
	Token   string
	Client  *http.Client
}

// Load implements PayloadSource.
func (s *APISource) Load(ctx context.Context) (ratelimit.Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := s.client()
	if err != nil {
		return ratelimit.Payload{}, err
	}

	req, err := client.NewRequest(http.MethodGet, "rate_limit", nil)
	if err != nil {
		return ratelimit.Payload{}, apperrors.WrapExternalService(err, fmt.Sprintf("GitHub API request failed: %v", err))
	}

	var body json.RawMessage
	if _, err := client.Do(ctx, req, &body); err != nil {
		return ratelimit.Payload{}, apperrors.WrapExternalService(err, fmt.Sprintf("GitHub API request failed: %v", err))
	}

	return ratelimit.ParsePayload(body, s.Describe())
}

// Describe implements PayloadSource.
func (s *APISource) Describe() string {
	return "GitHub API rate_limit"
}

func (s *APISource) client() (*github.Client, error) {
	client := github.NewClient(s.Client)
	if token := strings.TrimSpace(s.Token); token != "" {
		client = client.WithAuthToken(token)
	}

	base := strings.TrimSpace(s.BaseURL)
	if base == "" {
		return client, nil
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, apperrors.WrapConfigInvalid(err, fmt.Sprintf("invalid API URL: %s", s.BaseURL))
	}
	client.BaseURL = parsed
	return client, nil
}
