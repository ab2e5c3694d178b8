package service

import (
	"context"
	"encoding/xml"
	"time"

	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/internal/seo"
	"github.com/nexjob/nexjob-api/internal/wp"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	wpModifiedLayout = "2006-01-02T15:04:05"
	lastModLayout    = "2006-01-02"
)

// SitemapNames lists every sub-sitemap the index references.
var SitemapNames = []string{"static", "jobs", "articles", "categories", "locations"}

// ContentSlugFetcher pulls published content slugs from the upstream API.
type ContentSlugFetcher interface {
	GetContentSlugs(ctx context.Context, endpoint, token string) ([]wp.ContentSlug, error)
	GetFilters(ctx context.Context, endpoint, token string) (*models.FilterData, error)
}

// SitemapMarker stamps the last successful regeneration time.
type SitemapMarker interface {
	MarkSitemapGenerated(ctx context.Context, ts time.Time) error
}

// SitemapService builds the sitemap index and its sub-sitemaps from upstream
// content plus the filter-derived archive pages. Generated documents are
// cached in redis for the configured update interval.
type SitemapService struct {
	settings SettingsProvider
	marker   SitemapMarker
	upstream ContentSlugFetcher
	cache    FilterCache
	logger   *zap.Logger
	now      func() time.Time
}

// NewSitemapService wires the sitemap service.
func NewSitemapService(settings SettingsProvider, marker SitemapMarker, upstream ContentSlugFetcher, cache FilterCache, logger *zap.Logger) *SitemapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SitemapService{
		settings: settings,
		marker:   marker,
		upstream: upstream,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Index renders the sitemap index document.
func (s *SitemapService) Index(ctx context.Context) ([]byte, error) {
	settings := s.settings.GetSettings(ctx, false)

	lastMod := settings.LastSitemapUpdate
	if lastMod.IsZero() {
		lastMod = s.now().UTC()
	}

	index := sitemapIndex{Xmlns: sitemapNamespace}
	for _, name := range SitemapNames {
		index.Sitemaps = append(index.Sitemaps, sitemapRef{
			Loc:     settings.SiteURL + "/sitemap-" + name + ".xml",
			LastMod: lastMod.Format(lastModLayout),
		})
	}

	return marshalSitemap(index)
}

// Sitemap renders one sub-sitemap by name, serving a cached copy when one is
// fresh enough.
func (s *SitemapService) Sitemap(ctx context.Context, name string) ([]byte, error) {
	settings := s.settings.GetSettings(ctx, false)

	if s.cache != nil {
		var cached []byte
		if err := s.cache.Get(ctx, sitemapCacheKey(name), &cached); err == nil {
			return cached, nil
		}
	}

	doc, err := s.generate(ctx, settings, name)
	if err != nil {
		return nil, err
	}

	s.store(ctx, settings, name, doc)
	return doc, nil
}

func (s *SitemapService) generate(ctx context.Context, settings *models.SiteSettings, name string) ([]byte, error) {
	switch name {
	case "static":
		return s.staticSitemap(settings)
	case "jobs":
		return s.contentSitemap(ctx, settings, settings.WPJobsAPIURL, "/lowongan-kerja/", "daily", "0.9")
	case "articles":
		return s.contentSitemap(ctx, settings, settings.WPPostsAPIURL, "/artikel/", "weekly", "0.7")
	case "categories":
		return s.archiveSitemap(ctx, settings, "categories")
	case "locations":
		return s.archiveSitemap(ctx, settings, "locations")
	default:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown sitemap")
	}
}

func (s *SitemapService) staticSitemap(settings *models.SiteSettings) ([]byte, error) {
	today := s.now().UTC().Format(lastModLayout)
	pages := []struct {
		path       string
		changeFreq string
		priority   string
	}{
		{"/", "daily", "1.0"},
		{"/lowongan-kerja", "hourly", "0.9"},
		{"/artikel", "daily", "0.8"},
		{"/login", "monthly", "0.3"},
		{"/daftar", "monthly", "0.3"},
	}

	set := urlSet{Xmlns: sitemapNamespace}
	for _, page := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        settings.SiteURL + page.path,
			LastMod:    today,
			ChangeFreq: page.changeFreq,
			Priority:   page.priority,
		})
	}
	return marshalSitemap(set)
}

func (s *SitemapService) contentSitemap(ctx context.Context, settings *models.SiteSettings, endpoint, prefix, changeFreq, priority string) ([]byte, error) {
	slugs, err := s.upstream.GetContentSlugs(ctx, endpoint, settings.WPAuthToken)
	if err != nil {
		return nil, err
	}

	set := urlSet{Xmlns: sitemapNamespace}
	for _, entry := range slugs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        settings.SiteURL + prefix + entry.Slug,
			LastMod:    formatModified(entry.Modified),
			ChangeFreq: changeFreq,
			Priority:   priority,
		})
	}
	return marshalSitemap(set)
}

func (s *SitemapService) archiveSitemap(ctx context.Context, settings *models.SiteSettings, kind string) ([]byte, error) {
	filters, err := s.upstream.GetFilters(ctx, settings.WPFiltersAPIURL, settings.WPAuthToken)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format(lastModLayout)
	set := urlSet{Xmlns: sitemapNamespace}

	add := func(prefix, name string) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        settings.SiteURL + prefix + seo.Normalize(name),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	if kind == "categories" {
		for _, category := range filters.Categories {
			add("/kategori/", category)
		}
	} else {
		for _, province := range filters.Provinces {
			add("/lokasi/", province.Name)
			for _, city := range province.Cities {
				add("/lokasi/", city)
			}
		}
	}
	return marshalSitemap(set)
}

// ShouldRefresh reports whether the configured interval has elapsed since the
// last regeneration.
func (s *SitemapService) ShouldRefresh(ctx context.Context) bool {
	settings := s.settings.GetSettings(ctx, false)
	if !settings.AutoGenerateSitemap {
		return false
	}
	if settings.LastSitemapUpdate.IsZero() {
		return true
	}
	interval := time.Duration(settings.SitemapUpdateInterval) * time.Second
	return s.now().UTC().Sub(settings.LastSitemapUpdate) >= interval
}

// Refresh regenerates every sub-sitemap, repopulates the cache and stamps the
// bookkeeping columns. Partial upstream failures abort without stamping so the
// next cycle retries.
func (s *SitemapService) Refresh(ctx context.Context) error {
	settings := s.settings.GetSettings(ctx, false)

	if invalidator, ok := s.cache.(interface {
		Invalidate(ctx context.Context, pattern string) error
	}); ok {
		if err := invalidator.Invalidate(ctx, "nexjob:sitemap:*"); err != nil {
			s.logger.Warn("sitemap cache invalidation failed", zap.Error(err))
		}
	}

	for _, name := range SitemapNames {
		doc, err := s.generate(ctx, settings, name)
		if err != nil {
			return err
		}
		s.store(ctx, settings, name, doc)
	}

	if s.marker != nil {
		if err := s.marker.MarkSitemapGenerated(ctx, s.now().UTC()); err != nil {
			return err
		}
	}

	s.logger.Info("sitemaps regenerated", zap.Int("count", len(SitemapNames)))
	return nil
}

func (s *SitemapService) store(ctx context.Context, settings *models.SiteSettings, name string, doc []byte) {
	if s.cache == nil {
		return
	}
	ttl := time.Duration(settings.SitemapUpdateInterval) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := s.cache.Set(ctx, sitemapCacheKey(name), doc, ttl); err != nil {
		s.logger.Warn("sitemap cache write failed", zap.String("sitemap", name), zap.Error(err))
	}
}

func sitemapCacheKey(name string) string {
	return "nexjob:sitemap:" + name
}

func formatModified(raw string) string {
	if ts, err := time.Parse(wpModifiedLayout, raw); err == nil {
		return ts.Format(lastModLayout)
	}
	if len(raw) >= len(lastModLayout) {
		return raw[:len(lastModLayout)]
	}
	return ""
}

func marshalSitemap(doc interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
