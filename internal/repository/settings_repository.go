package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nexjob/nexjob-api/internal/models"
)

const settingsColumns = `id, wp_api_url, wp_filters_api_url, wp_posts_api_url, wp_jobs_api_url, wp_auth_token,
site_title, site_tagline, site_description, site_url, ga_id, gtm_id,
location_page_title_template, location_page_description_template,
category_page_title_template, category_page_description_template,
jobs_title, jobs_description, articles_title, articles_description,
login_page_title, login_page_description, signup_page_title, signup_page_description,
profile_page_title, profile_page_description,
home_og_image, jobs_og_image, articles_og_image, default_job_og_image, default_article_og_image,
robots_txt, sitemap_update_interval, auto_generate_sitemap, last_sitemap_update,
popup_ad_code, sidebar_archive_ad_code, sidebar_single_ad_code,
single_top_ad_code, single_bottom_ad_code, single_middle_ad_code,
created_at, updated_at`

// SettingsRepository persists the single active site settings row. The same
// repository type serves both the elevated and the public connection since
// the schema is identical on both.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetLatest fetches the most recently created settings row. Returns
// sql.ErrNoRows when no row exists yet.
func (r *SettingsRepository) GetLatest(ctx context.Context) (*models.SiteSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM site_settings ORDER BY created_at DESC LIMIT 1`, settingsColumns)
	var settings models.SiteSettings
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Insert creates the settings row, stamping both timestamps.
func (r *SettingsRepository) Insert(ctx context.Context, settings *models.SiteSettings) error {
	const query = `INSERT INTO site_settings (id, wp_api_url, wp_filters_api_url, wp_posts_api_url, wp_jobs_api_url, wp_auth_token,
site_title, site_tagline, site_description, site_url, ga_id, gtm_id,
location_page_title_template, location_page_description_template,
category_page_title_template, category_page_description_template,
jobs_title, jobs_description, articles_title, articles_description,
login_page_title, login_page_description, signup_page_title, signup_page_description,
profile_page_title, profile_page_description,
home_og_image, jobs_og_image, articles_og_image, default_job_og_image, default_article_og_image,
robots_txt, sitemap_update_interval, auto_generate_sitemap, last_sitemap_update,
popup_ad_code, sidebar_archive_ad_code, sidebar_single_ad_code,
single_top_ad_code, single_bottom_ad_code, single_middle_ad_code,
created_at, updated_at)
VALUES (:id, :wp_api_url, :wp_filters_api_url, :wp_posts_api_url, :wp_jobs_api_url, :wp_auth_token,
:site_title, :site_tagline, :site_description, :site_url, :ga_id, :gtm_id,
:location_page_title_template, :location_page_description_template,
:category_page_title_template, :category_page_description_template,
:jobs_title, :jobs_description, :articles_title, :articles_description,
:login_page_title, :login_page_description, :signup_page_title, :signup_page_description,
:profile_page_title, :profile_page_description,
:home_og_image, :jobs_og_image, :articles_og_image, :default_job_og_image, :default_article_og_image,
:robots_txt, :sitemap_update_interval, :auto_generate_sitemap, :last_sitemap_update,
:popup_ad_code, :sidebar_archive_ad_code, :sidebar_single_ad_code,
:single_top_ad_code, :single_bottom_ad_code, :single_middle_ad_code,
:created_at, :updated_at)`
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("insert site settings: %w", err)
	}
	return nil
}

// Update rewrites the settings row in place, stamping updated_at.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.SiteSettings) error {
	const query = `UPDATE site_settings SET
wp_api_url = :wp_api_url, wp_filters_api_url = :wp_filters_api_url,
wp_posts_api_url = :wp_posts_api_url, wp_jobs_api_url = :wp_jobs_api_url, wp_auth_token = :wp_auth_token,
site_title = :site_title, site_tagline = :site_tagline, site_description = :site_description,
site_url = :site_url, ga_id = :ga_id, gtm_id = :gtm_id,
location_page_title_template = :location_page_title_template,
location_page_description_template = :location_page_description_template,
category_page_title_template = :category_page_title_template,
category_page_description_template = :category_page_description_template,
jobs_title = :jobs_title, jobs_description = :jobs_description,
articles_title = :articles_title, articles_description = :articles_description,
login_page_title = :login_page_title, login_page_description = :login_page_description,
signup_page_title = :signup_page_title, signup_page_description = :signup_page_description,
profile_page_title = :profile_page_title, profile_page_description = :profile_page_description,
home_og_image = :home_og_image, jobs_og_image = :jobs_og_image, articles_og_image = :articles_og_image,
default_job_og_image = :default_job_og_image, default_article_og_image = :default_article_og_image,
robots_txt = :robots_txt, sitemap_update_interval = :sitemap_update_interval,
auto_generate_sitemap = :auto_generate_sitemap, last_sitemap_update = :last_sitemap_update,
popup_ad_code = :popup_ad_code, sidebar_archive_ad_code = :sidebar_archive_ad_code,
sidebar_single_ad_code = :sidebar_single_ad_code, single_top_ad_code = :single_top_ad_code,
single_bottom_ad_code = :single_bottom_ad_code, single_middle_ad_code = :single_middle_ad_code,
updated_at = :updated_at
WHERE id = :id`
	settings.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	return nil
}

// UpdateLastSitemapGeneration stamps the sitemap bookkeeping columns only.
func (r *SettingsRepository) UpdateLastSitemapGeneration(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE site_settings SET last_sitemap_update = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, ts, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update last sitemap generation: %w", err)
	}
	return nil
}
