package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/seo"
	"github.com/nexjob/nexjob-api/pkg/config"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

type stubSettingsProvider struct {
	settings *models.SiteSettings
}

func (s *stubSettingsProvider) GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings {
	return s.settings
}

type stubFilterFetcher struct {
	filters *models.FilterData
	err     error
	calls   int
}

func (s *stubFilterFetcher) GetFilters(ctx context.Context, endpoint, token string) (*models.FilterData, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.filters, nil
}

type memoryFilterCache struct {
	data map[string][]byte
}

func newMemoryFilterCache() *memoryFilterCache {
	return &memoryFilterCache{data: map[string][]byte{}}
}

func (c *memoryFilterCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryFilterCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func testFilterData() *models.FilterData {
	return &models.FilterData{
		Categories: []string{"Teknologi Informasi", "Sales & Marketing"},
		Provinces: []seo.Province{
			{Name: "DKI Jakarta", Cities: []string{"Jakarta Selatan", "Jakarta Timur"}},
			{Name: "Jawa Barat", Cities: []string{"Bandung", "Bekasi"}},
		},
	}
}

func newTestSEOService(fetcher *stubFilterFetcher, cache FilterCache, cacheEnabled bool) *SEOService {
	settings := testSettingsRow()
	return NewSEOService(
		&stubSettingsProvider{settings: settings},
		fetcher,
		cache,
		nil,
		config.FiltersCacheConfig{Enabled: cacheEnabled, CacheTTL: 10 * time.Minute},
		nil,
	)
}

func TestCategoryPageMetaRendersTemplates(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{filters: testFilterData()}, nil, false)

	meta, err := svc.CategoryPageMeta(context.Background(), "teknologi-informasi")
	require.NoError(t, err)

	assert.Equal(t, "Lowongan Kerja Teknologi Informasi Terbaru - Nexjob Live", meta.Title)
	assert.Equal(t, "Teknologi Informasi", meta.CanonicalName)
	assert.Equal(t, "category", meta.EntityType)
}

func TestCategoryPageMetaHandlesAmpersandSlug(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{filters: testFilterData()}, nil, false)

	// "Sales & Marketing" normalizes with the ampersand dropped entirely.
	meta, err := svc.CategoryPageMeta(context.Background(), "sales-marketing")
	require.NoError(t, err)
	assert.Equal(t, "Sales & Marketing", meta.CanonicalName)
}

func TestCategoryPageMetaUnknownSlug(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{filters: testFilterData()}, nil, false)

	_, err := svc.CategoryPageMeta(context.Background(), "no-such-category")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLocationPageMetaProvinceAndCity(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{filters: testFilterData()}, nil, false)

	province, err := svc.LocationPageMeta(context.Background(), "dki-jakarta")
	require.NoError(t, err)
	assert.Equal(t, "province", province.EntityType)
	assert.Equal(t, "Lowongan Kerja di DKI Jakarta Terbaru - Nexjob Live", province.Title)

	city, err := svc.LocationPageMeta(context.Background(), "bandung")
	require.NoError(t, err)
	assert.Equal(t, "city", city.EntityType)
	assert.Equal(t, "Bandung", city.CanonicalName)
}

func TestLocationPageMetaUpstreamFailureSurfaces(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{err: errors.New("upstream down")}, nil, false)

	_, err := svc.LocationPageMeta(context.Background(), "bandung")
	assert.Error(t, err)
}

func TestFilterDataUsesCacheOnSecondCall(t *testing.T) {
	fetcher := &stubFilterFetcher{filters: testFilterData()}
	svc := newTestSEOService(fetcher, newMemoryFilterCache(), true)

	_, err := svc.CategoryPageMeta(context.Background(), "teknologi-informasi")
	require.NoError(t, err)
	_, err = svc.LocationPageMeta(context.Background(), "bekasi")
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
}

func TestStaticPageMeta(t *testing.T) {
	svc := newTestSEOService(&stubFilterFetcher{filters: testFilterData()}, nil, false)

	jobs, err := svc.StaticPageMeta(context.Background(), "jobs")
	require.NoError(t, err)
	assert.Contains(t, jobs.Title, "Lowongan Kerja Terbaru")

	home, err := svc.StaticPageMeta(context.Background(), "home")
	require.NoError(t, err)
	assert.Contains(t, home.Title, "Nexjob Live")

	_, err = svc.StaticPageMeta(context.Background(), "mystery")
	assert.Error(t, err)
}
