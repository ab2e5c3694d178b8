package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/wp"
)

type stubUpstream struct {
	slugs    []wp.ContentSlug
	slugsErr error
	filters  *models.FilterData
	filtErr  error
}

func (s *stubUpstream) GetContentSlugs(ctx context.Context, endpoint, token string) ([]wp.ContentSlug, error) {
	if s.slugsErr != nil {
		return nil, s.slugsErr
	}
	return s.slugs, nil
}

func (s *stubUpstream) GetFilters(ctx context.Context, endpoint, token string) (*models.FilterData, error) {
	if s.filtErr != nil {
		return nil, s.filtErr
	}
	return s.filters, nil
}

type stubSitemapMarker struct {
	stamped time.Time
	calls   int
}

func (s *stubSitemapMarker) MarkSitemapGenerated(ctx context.Context, ts time.Time) error {
	s.calls++
	s.stamped = ts
	return nil
}

func newTestSitemapService(upstream ContentSlugFetcher, marker SitemapMarker) (*SitemapService, *models.SiteSettings) {
	settings := testSettingsRow()
	svc := NewSitemapService(&stubSettingsProvider{settings: settings}, marker, upstream, nil, nil)
	return svc, settings
}

func TestSitemapIndexListsAllSubSitemaps(t *testing.T) {
	svc, _ := newTestSitemapService(&stubUpstream{}, nil)

	doc, err := svc.Index(context.Background())
	require.NoError(t, err)

	body := string(doc)
	assert.Contains(t, body, "<sitemapindex")
	for _, name := range SitemapNames {
		assert.Contains(t, body, "https://nexjob.tech/sitemap-"+name+".xml")
	}
}

func TestJobsSitemapBuildsContentURLs(t *testing.T) {
	upstream := &stubUpstream{slugs: []wp.ContentSlug{
		{Slug: "backend-engineer-jakarta", Modified: "2025-03-10T08:30:00"},
	}}
	svc, _ := newTestSitemapService(upstream, nil)

	doc, err := svc.Sitemap(context.Background(), "jobs")
	require.NoError(t, err)

	body := string(doc)
	assert.Contains(t, body, "<loc>https://nexjob.tech/lowongan-kerja/backend-engineer-jakarta</loc>")
	assert.Contains(t, body, "<lastmod>2025-03-10</lastmod>")
	assert.Contains(t, body, "<changefreq>daily</changefreq>")
}

func TestCategoriesSitemapNormalizesSlugs(t *testing.T) {
	upstream := &stubUpstream{filters: testFilterData()}
	svc, _ := newTestSitemapService(upstream, nil)

	doc, err := svc.Sitemap(context.Background(), "categories")
	require.NoError(t, err)

	body := string(doc)
	assert.Contains(t, body, "https://nexjob.tech/kategori/teknologi-informasi")
	assert.Contains(t, body, "https://nexjob.tech/kategori/sales-marketing")
}

func TestLocationsSitemapIncludesProvincesAndCities(t *testing.T) {
	upstream := &stubUpstream{filters: testFilterData()}
	svc, _ := newTestSitemapService(upstream, nil)

	doc, err := svc.Sitemap(context.Background(), "locations")
	require.NoError(t, err)

	body := string(doc)
	assert.Contains(t, body, "https://nexjob.tech/lokasi/dki-jakarta")
	assert.Contains(t, body, "https://nexjob.tech/lokasi/bandung")
}

func TestSitemapUnknownName(t *testing.T) {
	svc, _ := newTestSitemapService(&stubUpstream{}, nil)

	_, err := svc.Sitemap(context.Background(), "videos")
	assert.Error(t, err)
}

func TestShouldRefreshHonorsIntervalAndToggle(t *testing.T) {
	svc, settings := newTestSitemapService(&stubUpstream{}, nil)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	settings.AutoGenerateSitemap = true
	settings.SitemapUpdateInterval = 3600

	settings.LastSitemapUpdate = time.Time{}
	assert.True(t, svc.ShouldRefresh(context.Background()), "never generated yet")

	settings.LastSitemapUpdate = now.Add(-30 * time.Minute)
	assert.False(t, svc.ShouldRefresh(context.Background()), "interval not elapsed")

	settings.LastSitemapUpdate = now.Add(-2 * time.Hour)
	assert.True(t, svc.ShouldRefresh(context.Background()), "interval elapsed")

	settings.AutoGenerateSitemap = false
	assert.False(t, svc.ShouldRefresh(context.Background()), "auto generation disabled")
}

func TestRefreshStampsBookkeeping(t *testing.T) {
	upstream := &stubUpstream{
		slugs:   []wp.ContentSlug{{Slug: "a-job", Modified: "2025-01-01T00:00:00"}},
		filters: testFilterData(),
	}
	marker := &stubSitemapMarker{}
	svc, _ := newTestSitemapService(upstream, marker)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 1, marker.calls)
	assert.False(t, marker.stamped.IsZero())
}

func TestRefreshAbortsWithoutStampingOnUpstreamFailure(t *testing.T) {
	upstream := &stubUpstream{
		slugsErr: errors.New("upstream down"),
		filters:  testFilterData(),
	}
	marker := &stubSitemapMarker{}
	svc, _ := newTestSitemapService(upstream, marker)

	require.Error(t, svc.Refresh(context.Background()))
	assert.Equal(t, 0, marker.calls)
}
