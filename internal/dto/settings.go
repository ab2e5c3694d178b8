package dto

// UpdateSettingsRequest is a partial settings update. Nil fields are left
// untouched by the save path.
type UpdateSettingsRequest struct {
	WPAPIURL        *string `json:"wp_api_url,omitempty"`
	WPFiltersAPIURL *string `json:"wp_filters_api_url,omitempty" validate:"omitempty,url"`
	WPPostsAPIURL   *string `json:"wp_posts_api_url,omitempty" validate:"omitempty,url"`
	WPJobsAPIURL    *string `json:"wp_jobs_api_url,omitempty" validate:"omitempty,url"`
	WPAuthToken     *string `json:"wp_auth_token,omitempty"`

	SiteTitle       *string `json:"site_title,omitempty"`
	SiteTagline     *string `json:"site_tagline,omitempty"`
	SiteDescription *string `json:"site_description,omitempty"`
	SiteURL         *string `json:"site_url,omitempty" validate:"omitempty,url"`
	GAID            *string `json:"ga_id,omitempty"`
	GTMID           *string `json:"gtm_id,omitempty"`

	LocationPageTitleTemplate       *string `json:"location_page_title_template,omitempty"`
	LocationPageDescriptionTemplate *string `json:"location_page_description_template,omitempty"`
	CategoryPageTitleTemplate       *string `json:"category_page_title_template,omitempty"`
	CategoryPageDescriptionTemplate *string `json:"category_page_description_template,omitempty"`

	JobsTitle           *string `json:"jobs_title,omitempty"`
	JobsDescription     *string `json:"jobs_description,omitempty"`
	ArticlesTitle       *string `json:"articles_title,omitempty"`
	ArticlesDescription *string `json:"articles_description,omitempty"`

	LoginPageTitle        *string `json:"login_page_title,omitempty"`
	LoginPageDescription  *string `json:"login_page_description,omitempty"`
	SignupPageTitle       *string `json:"signup_page_title,omitempty"`
	SignupPageDescription *string `json:"signup_page_description,omitempty"`
	ProfilePageTitle      *string `json:"profile_page_title,omitempty"`
	ProfilePageDesc       *string `json:"profile_page_description,omitempty"`

	HomeOGImage           *string `json:"home_og_image,omitempty"`
	JobsOGImage           *string `json:"jobs_og_image,omitempty"`
	ArticlesOGImage       *string `json:"articles_og_image,omitempty"`
	DefaultJobOGImage     *string `json:"default_job_og_image,omitempty"`
	DefaultArticleOGImage *string `json:"default_article_og_image,omitempty"`

	RobotsTxt             *string `json:"robots_txt,omitempty"`
	SitemapUpdateInterval *int    `json:"sitemap_update_interval,omitempty" validate:"omitempty,min=60"`
	AutoGenerateSitemap   *bool   `json:"auto_generate_sitemap,omitempty"`

	PopupAdCode          *string `json:"popup_ad_code,omitempty"`
	SidebarArchiveAdCode *string `json:"sidebar_archive_ad_code,omitempty"`
	SidebarSingleAdCode  *string `json:"sidebar_single_ad_code,omitempty"`
	SingleTopAdCode      *string `json:"single_top_ad_code,omitempty"`
	SingleBottomAdCode   *string `json:"single_bottom_ad_code,omitempty"`
	SingleMiddleAdCode   *string `json:"single_middle_ad_code,omitempty"`
}

// SaveSettingsResult is the structured outcome of a settings save. Callers
// check Success instead of an error value.
type SaveSettingsResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
