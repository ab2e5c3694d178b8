package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/pkg/config"
)

// SettingsReader is the read side of settings persistence. Both the elevated
// and the public database connection satisfy it.
type SettingsReader interface {
	GetLatest(ctx context.Context) (*models.SiteSettings, error)
}

// SettingsStore is the full elevated persistence surface.
type SettingsStore interface {
	SettingsReader
	Insert(ctx context.Context, settings *models.SiteSettings) error
	Update(ctx context.Context, settings *models.SiteSettings) error
	UpdateLastSitemapGeneration(ctx context.Context, id string, ts time.Time) error
}

// SuperAdminChecker verifies that a token holder still has super admin rights.
type SuperAdminChecker interface {
	IsSuperAdmin(ctx context.Context, claims *models.JWTClaims) (bool, error)
}

// AuditRecorder persists back-office mutation records.
type AuditRecorder interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// SettingsService resolves site settings through an ordered chain of sources
// and owns the only write path to them. Reads never fail: when every tier is
// unreachable the hardcoded defaults are served.
type SettingsService struct {
	primary  SettingsStore
	public   SettingsReader
	cache    *SettingsCache
	auth     SuperAdminChecker
	audit    AuditRecorder
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger

	defaults     func() *models.SiteSettings
	queryTimeout time.Duration
	authTimeout  time.Duration
}

// NewSettingsService wires the settings resolver.
func NewSettingsService(
	primary SettingsStore,
	public SettingsReader,
	cache *SettingsCache,
	auth SuperAdminChecker,
	audit AuditRecorder,
	metrics *MetricsService,
	cfg config.SettingsConfig,
	defaults func() *models.SiteSettings,
	logger *zap.Logger,
) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	queryTimeout := cfg.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = 15 * time.Second
	}
	authTimeout := cfg.AuthTimeout
	if authTimeout <= 0 {
		authTimeout = 10 * time.Second
	}
	return &SettingsService{
		primary:      primary,
		public:       public,
		cache:        cache,
		auth:         auth,
		audit:        audit,
		metrics:      metrics,
		validate:     validator.New(),
		logger:       logger,
		defaults:     defaults,
		queryTimeout: queryTimeout,
		authTimeout:  authTimeout,
	}
}

type settingsSource struct {
	name   string
	reader SettingsReader
}

// GetSettings resolves the active settings. The chain is: in-process cache,
// elevated connection, public connection, stale cache, hardcoded defaults.
// forceRefresh bypasses the cache entirely, for reads on behalf of admins who
// must see what is persisted right now.
func (s *SettingsService) GetSettings(ctx context.Context, forceRefresh bool) *models.SiteSettings {
	if !forceRefresh {
		if cached, ok := s.cache.Get(); ok {
			s.metrics.RecordSettingsSource("cache")
			return cached
		}
	}

	sources := []settingsSource{
		{name: "primary", reader: s.primary},
		{name: "public", reader: s.public},
	}
	for _, src := range sources {
		if src.reader == nil {
			continue
		}
		settings, err := s.fetch(ctx, src.reader)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.logger.Debug("settings source has no row", zap.String("source", src.name))
			} else {
				s.logger.Warn("settings source failed", zap.String("source", src.name), zap.Error(err))
			}
			continue
		}
		if !forceRefresh {
			s.cache.Set(settings)
		}
		s.metrics.RecordSettingsSource(src.name)
		return settings
	}

	// An expired snapshot still beats the static defaults.
	if !forceRefresh {
		if stale, ok := s.cache.GetStale(); ok {
			s.metrics.RecordSettingsSource("stale_cache")
			return stale
		}
	}

	s.metrics.RecordSettingsSource("defaults")
	return s.defaults()
}

func (s *SettingsService) fetch(ctx context.Context, reader SettingsReader) (*models.SiteSettings, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return reader.GetLatest(fetchCtx)
}

// Save applies a partial settings update. The outcome is a structured result
// rather than an error: callers render Result.Error to the operator verbatim.
// The in-process cache is dropped whether or not the write succeeds, so a
// partially applied save can never pin stale data.
func (s *SettingsService) Save(ctx context.Context, req *dto.UpdateSettingsRequest, actor *models.JWTClaims, ip, userAgent string) dto.SaveSettingsResult {
	if err := s.validate.Struct(req); err != nil {
		return dto.SaveSettingsResult{Error: "invalid settings payload: " + err.Error()}
	}

	if actor == nil {
		return dto.SaveSettingsResult{Error: "unauthorized: super admin access required"}
	}

	authCtx, cancelAuth := context.WithTimeout(ctx, s.authTimeout)
	defer cancelAuth()
	isSuper, err := s.auth.IsSuperAdmin(authCtx, actor)
	if err != nil {
		s.logger.Warn("super admin check failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return dto.SaveSettingsResult{Error: classifySaveError(err)}
	}
	if !isSuper {
		return dto.SaveSettingsResult{Error: "unauthorized: super admin access required"}
	}

	defer s.cache.Clear()

	writeCtx, cancelWrite := context.WithTimeout(ctx, s.queryTimeout)
	defer cancelWrite()

	current, err := s.primary.GetLatest(writeCtx)
	var oldValues []byte
	switch {
	case err == nil:
		oldValues, _ = json.Marshal(current)
		applyUpdate(current, req)
		if err := s.primary.Update(writeCtx, current); err != nil {
			s.logger.Error("settings update failed", zap.Error(err))
			return dto.SaveSettingsResult{Error: classifySaveError(err)}
		}
	case errors.Is(err, sql.ErrNoRows):
		current = s.defaults()
		current.ID = uuid.NewString()
		applyUpdate(current, req)
		if err := s.primary.Insert(writeCtx, current); err != nil {
			s.logger.Error("settings insert failed", zap.Error(err))
			return dto.SaveSettingsResult{Error: classifySaveError(err)}
		}
	default:
		s.logger.Error("settings lookup for save failed", zap.Error(err))
		return dto.SaveSettingsResult{Error: classifySaveError(err)}
	}

	s.recordAudit(ctx, actor, current, oldValues, ip, userAgent)

	s.logger.Info("site settings saved",
		zap.String("settings_id", current.ID),
		zap.String("user_id", actor.UserID))

	return dto.SaveSettingsResult{Success: true}
}

// MarkSitemapGenerated stamps the sitemap bookkeeping columns after a
// successful regeneration and drops the cached snapshot.
func (s *SettingsService) MarkSitemapGenerated(ctx context.Context, ts time.Time) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	current, err := s.primary.GetLatest(writeCtx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	if err := s.primary.UpdateLastSitemapGeneration(writeCtx, current.ID, ts); err != nil {
		return err
	}

	s.cache.Clear()
	return nil
}

func (s *SettingsService) recordAudit(ctx context.Context, actor *models.JWTClaims, settings *models.SiteSettings, oldValues []byte, ip, userAgent string) {
	if s.audit == nil {
		return
	}

	newValues, _ := json.Marshal(settings)
	entry := &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionSettingsUpdate,
		Resource:   "site_settings",
		ResourceID: &settings.ID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		// Audit failures never fail the save.
		s.logger.Warn("audit write failed", zap.Error(err))
	}
}

// classifySaveError maps infrastructure failures to operator-facing messages.
func classifySaveError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timeout - please check your connection and try again"
	case errors.As(err, &netErr):
		return "network error - please check your connection and try again"
	default:
		return err.Error()
	}
}

func applyUpdate(settings *models.SiteSettings, req *dto.UpdateSettingsRequest) {
	setString(&settings.WPAPIURL, req.WPAPIURL)
	setString(&settings.WPFiltersAPIURL, req.WPFiltersAPIURL)
	setString(&settings.WPPostsAPIURL, req.WPPostsAPIURL)
	setString(&settings.WPJobsAPIURL, req.WPJobsAPIURL)
	setString(&settings.WPAuthToken, req.WPAuthToken)

	setString(&settings.SiteTitle, req.SiteTitle)
	setString(&settings.SiteTagline, req.SiteTagline)
	setString(&settings.SiteDescription, req.SiteDescription)
	setString(&settings.SiteURL, req.SiteURL)
	setString(&settings.GAID, req.GAID)
	setString(&settings.GTMID, req.GTMID)

	setString(&settings.LocationPageTitleTemplate, req.LocationPageTitleTemplate)
	setString(&settings.LocationPageDescriptionTemplate, req.LocationPageDescriptionTemplate)
	setString(&settings.CategoryPageTitleTemplate, req.CategoryPageTitleTemplate)
	setString(&settings.CategoryPageDescriptionTemplate, req.CategoryPageDescriptionTemplate)

	setString(&settings.JobsTitle, req.JobsTitle)
	setString(&settings.JobsDescription, req.JobsDescription)
	setString(&settings.ArticlesTitle, req.ArticlesTitle)
	setString(&settings.ArticlesDescription, req.ArticlesDescription)

	setString(&settings.LoginPageTitle, req.LoginPageTitle)
	setString(&settings.LoginPageDescription, req.LoginPageDescription)
	setString(&settings.SignupPageTitle, req.SignupPageTitle)
	setString(&settings.SignupPageDescription, req.SignupPageDescription)
	setString(&settings.ProfilePageTitle, req.ProfilePageTitle)
	setString(&settings.ProfilePageDesc, req.ProfilePageDesc)

	setString(&settings.HomeOGImage, req.HomeOGImage)
	setString(&settings.JobsOGImage, req.JobsOGImage)
	setString(&settings.ArticlesOGImage, req.ArticlesOGImage)
	setString(&settings.DefaultJobOGImage, req.DefaultJobOGImage)
	setString(&settings.DefaultArticleOGImage, req.DefaultArticleOGImage)

	setString(&settings.RobotsTxt, req.RobotsTxt)
	setInt(&settings.SitemapUpdateInterval, req.SitemapUpdateInterval)
	setBool(&settings.AutoGenerateSitemap, req.AutoGenerateSitemap)

	setString(&settings.PopupAdCode, req.PopupAdCode)
	setString(&settings.SidebarArchiveAdCode, req.SidebarArchiveAdCode)
	setString(&settings.SidebarSingleAdCode, req.SidebarSingleAdCode)
	setString(&settings.SingleTopAdCode, req.SingleTopAdCode)
	setString(&settings.SingleBottomAdCode, req.SingleBottomAdCode)
	setString(&settings.SingleMiddleAdCode, req.SingleMiddleAdCode)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
