// Package wp consumes the WordPress-backed job/article API. Only the data
// this pipeline needs is modelled: aggregated filter names and content slugs
// for the sitemap.
package wp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/seo"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

const slugsPerPage = 100

// Client is a thin HTTP consumer for the upstream WordPress API. Endpoints
// and tokens are passed per call because they live in the site settings and
// can change at runtime.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

// NewClient constructs a client with the given per-request timeout.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type filtersPayload struct {
	Categories []string            `json:"nexjob_kategori_pekerjaan"`
	Provinces  map[string][]string `json:"nexjob_lokasi_provinsi"`
}

// GetFilters fetches the aggregated category and location names. Categories
// keep their upstream order; provinces arrive as a JSON object, so they are
// sorted by name to make scan order deterministic.
func (c *Client) GetFilters(ctx context.Context, endpoint, token string) (*models.FilterData, error) {
	var payload filtersPayload
	if err := c.getJSON(ctx, endpoint, token, &payload); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payload.Provinces))
	for name := range payload.Provinces {
		names = append(names, name)
	}
	sort.Strings(names)

	provinces := make([]seo.Province, 0, len(names))
	for _, name := range names {
		provinces = append(provinces, seo.Province{Name: name, Cities: payload.Provinces[name]})
	}

	return &models.FilterData{
		Categories: payload.Categories,
		Provinces:  provinces,
	}, nil
}

type slugEntry struct {
	Slug     string `json:"slug"`
	Modified string `json:"modified"`
}

// ContentSlug is a published content identifier plus its last-modified time.
type ContentSlug struct {
	Slug     string
	Modified string
}

// GetContentSlugs walks the paged wp-json listing for the given content
// endpoint and returns every published slug.
func (c *Client) GetContentSlugs(ctx context.Context, endpoint, token string) ([]ContentSlug, error) {
	var all []ContentSlug
	for page := 1; ; page++ {
		url := endpoint + "?_fields=slug,modified&per_page=" + strconv.Itoa(slugsPerPage) + "&page=" + strconv.Itoa(page)

		var entries []slugEntry
		err := c.getJSON(ctx, url, token, &entries)
		if err != nil {
			// WordPress answers 400 for a page past the end.
			if page > 1 && errors.Is(err, errPastEnd) {
				break
			}
			return nil, err
		}
		for _, entry := range entries {
			all = append(all, ContentSlug{Slug: entry.Slug, Modified: entry.Modified})
		}
		if len(entries) < slugsPerPage {
			break
		}
	}
	return all, nil
}

var errPastEnd = errors.New("page past end of collection")

func (c *Client) getJSON(ctx context.Context, url, token string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, "upstream request timed out")
		}
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return errPastEnd
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upstream returned non-200", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}
