// Package spotify adapts the Spotify Web API to the CatalogProvider port.
//
// Authentication uses the client-credentials flow: the oauth2 token source
// built here is the process-wide access-token cache, refreshing lazily when
// the cached token expires. Absence of credentials is handled upstream by
// simply not constructing a client.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
	"github.com/Verisomusic/BeatMatch/internal/core/ports"
)

// searchPageSize is how many playlists one search fetches; distinct owners
// are usually far fewer than playlists, so we over-fetch relative to the
// caller's label cap.
const searchPageSize = 20

// Client queries the Spotify catalog for record labels.
type Client struct {
	api *spot.Client
	log *zap.Logger
}

var _ ports.CatalogProvider = (*Client)(nil)

// NewClient constructs a catalog client from service credentials. The
// returned client owns a cached, auto-refreshing app token.
func NewClient(clientID, clientSecret string, log *zap.Logger) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return &Client{
		api: spot.New(cfg.Client(context.Background())),
		log: log,
	}
}

// NewClientWithHTTP wires a preconfigured HTTP client and base URL. Tests use
// it to point the adapter at an httptest server.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, log *zap.Logger) *Client {
	return &Client{
		api: spot.New(httpClient, spot.WithBaseURL(baseURL)),
		log: log,
	}
}

// SearchLabels finds playlists matching the term and extracts distinct
// publisher names with their profile URLs, in catalog relevance order.
func (c *Client) SearchLabels(ctx context.Context, term string, limit int) ([]domain.LabelRecommendation, error) {
	if limit <= 0 {
		return nil, nil
	}

	result, err := c.api.Search(ctx, term, spot.SearchTypePlaylist, spot.Limit(searchPageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ports.ErrCatalogUnavailable, term, err)
	}
	if result.Playlists == nil {
		return nil, nil
	}

	seen := make(map[string]struct{}, limit)
	labels := make([]domain.LabelRecommendation, 0, limit)
	for _, pl := range result.Playlists.Playlists {
		name := strings.TrimSpace(pl.Owner.DisplayName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, domain.LabelRecommendation{
			Name: name,
			URL:  pl.Owner.ExternalURLs["spotify"],
		})
		if len(labels) >= limit {
			break
		}
	}

	c.log.Debug("catalog search",
		zap.String("term", term),
		zap.Int("labels", len(labels)))
	return labels, nil
}
