package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/seo"
	"github.com/nexjob/nexjob-api/pkg/config"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

const filtersCacheKey = "nexjob:filters"

// SettingsProvider resolves the active site settings.
type SettingsProvider interface {
	GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings
}

// FilterFetcher pulls the aggregated category/location filter names upstream.
type FilterFetcher interface {
	GetFilters(ctx context.Context, endpoint, token string) (*models.FilterData, error)
}

// FilterCache is the redis-backed snapshot store for upstream filter data.
type FilterCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// SEOService renders page metadata for the public site: dynamic category and
// location archive pages driven by templates, plus the static pages whose
// copy lives in the settings row.
type SEOService struct {
	settings SettingsProvider
	filters  FilterFetcher
	cache    FilterCache
	metrics  *MetricsService
	cfg      config.FiltersCacheConfig
	logger   *zap.Logger
}

// NewSEOService wires the SEO metadata service.
func NewSEOService(settings SettingsProvider, filters FilterFetcher, cache FilterCache, metrics *MetricsService, cfg config.FiltersCacheConfig, logger *zap.Logger) *SEOService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SEOService{
		settings: settings,
		filters:  filters,
		cache:    cache,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// CategoryPageMeta resolves a category archive slug into rendered metadata.
// Returns ErrNotFound when no category normalizes to the slug.
func (s *SEOService) CategoryPageMeta(ctx context.Context, slug string) (*dto.PageMeta, error) {
	settings := s.settings.GetSettings(ctx, false)

	filters, err := s.filterData(ctx, settings)
	if err != nil {
		return nil, err
	}

	category, ok := seo.ResolveCategory(slug, filters.Categories)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
	}

	vars := map[string]string{
		"kategori":   category,
		"site_title": settings.SiteTitle,
	}
	return &dto.PageMeta{
		Title:         seo.Render(settings.CategoryPageTitleTemplate, vars),
		Description:   seo.Render(settings.CategoryPageDescriptionTemplate, vars),
		CanonicalName: category,
		EntityType:    "category",
		OGImage:       settings.JobsOGImage,
	}, nil
}

// LocationPageMeta resolves a location archive slug into rendered metadata.
// Returns ErrNotFound when no province or city normalizes to the slug.
func (s *SEOService) LocationPageMeta(ctx context.Context, slug string) (*dto.PageMeta, error) {
	settings := s.settings.GetSettings(ctx, false)

	filters, err := s.filterData(ctx, settings)
	if err != nil {
		return nil, err
	}

	match, ok := seo.ResolveLocation(slug, filters.Provinces)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "location not found")
	}

	vars := map[string]string{
		"lokasi":     match.Name,
		"site_title": settings.SiteTitle,
	}
	return &dto.PageMeta{
		Title:         seo.Render(settings.LocationPageTitleTemplate, vars),
		Description:   seo.Render(settings.LocationPageDescriptionTemplate, vars),
		CanonicalName: match.Name,
		EntityType:    string(match.Type),
		OGImage:       settings.JobsOGImage,
	}, nil
}

// StaticPageMeta returns metadata for the fixed pages. Unknown page names
// return ErrNotFound.
func (s *SEOService) StaticPageMeta(ctx context.Context, page string) (*dto.PageMeta, error) {
	settings := s.settings.GetSettings(ctx, false)

	switch page {
	case "home":
		return &dto.PageMeta{
			Title:       settings.SiteTitle + " - " + settings.SiteTagline,
			Description: settings.SiteDescription,
			OGImage:     settings.HomeOGImage,
		}, nil
	case "jobs":
		return &dto.PageMeta{
			Title:       settings.JobsTitle,
			Description: settings.JobsDescription,
			OGImage:     settings.JobsOGImage,
		}, nil
	case "articles":
		return &dto.PageMeta{
			Title:       settings.ArticlesTitle,
			Description: settings.ArticlesDescription,
			OGImage:     settings.ArticlesOGImage,
		}, nil
	case "login":
		return &dto.PageMeta{
			Title:       settings.LoginPageTitle,
			Description: settings.LoginPageDescription,
		}, nil
	case "signup":
		return &dto.PageMeta{
			Title:       settings.SignupPageTitle,
			Description: settings.SignupPageDescription,
		}, nil
	case "profile":
		return &dto.PageMeta{
			Title:       settings.ProfilePageTitle,
			Description: settings.ProfilePageDesc,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown page")
	}
}

// filterData returns the upstream filter snapshot, served from redis when the
// filters cache is enabled. Upstream failures surface to the caller: a
// category page cannot be rendered without knowing whether the slug exists.
func (s *SEOService) filterData(ctx context.Context, settings *models.SiteSettings) (*models.FilterData, error) {
	if s.cfg.Enabled && s.cache != nil {
		var cached models.FilterData
		err := s.cache.Get(ctx, filtersCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("filters cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	filters, err := s.filters.GetFilters(ctx, settings.WPFiltersAPIURL, settings.WPAuthToken)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveUpstreamRequest(time.Since(start))

	if s.cfg.Enabled && s.cache != nil {
		if err := s.cache.Set(ctx, filtersCacheKey, filters, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("filters cache write failed", zap.Error(err))
		}
	}

	return filters, nil
}
