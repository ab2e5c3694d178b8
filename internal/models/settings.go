package models

import "time"

// AdPosition identifies an advertisement placement on the site.
type AdPosition string

const (
	AdPopup          AdPosition = "popup"
	AdSidebarArchive AdPosition = "sidebar_archive"
	AdSidebarSingle  AdPosition = "sidebar_single"
	AdSingleTop      AdPosition = "single_top"
	AdSingleBottom   AdPosition = "single_bottom"
	AdSingleMiddle   AdPosition = "single_middle"
)

// AdPositions lists every supported placement.
var AdPositions = []AdPosition{
	AdPopup,
	AdSidebarArchive,
	AdSidebarSingle,
	AdSingleTop,
	AdSingleBottom,
	AdSingleMiddle,
}

// SiteSettings is the single active site configuration row. It is created
// lazily with defaults when absent and only ever mutated through the
// settings service save path.
type SiteSettings struct {
	ID string `db:"id" json:"id"`

	// Upstream WordPress API endpoints and credentials.
	WPAPIURL        string `db:"wp_api_url" json:"wp_api_url"`
	WPFiltersAPIURL string `db:"wp_filters_api_url" json:"wp_filters_api_url"`
	WPPostsAPIURL   string `db:"wp_posts_api_url" json:"wp_posts_api_url"`
	WPJobsAPIURL    string `db:"wp_jobs_api_url" json:"wp_jobs_api_url"`
	WPAuthToken     string `db:"wp_auth_token" json:"wp_auth_token"`

	// Site identity.
	SiteTitle       string `db:"site_title" json:"site_title"`
	SiteTagline     string `db:"site_tagline" json:"site_tagline"`
	SiteDescription string `db:"site_description" json:"site_description"`
	SiteURL         string `db:"site_url" json:"site_url"`
	GAID            string `db:"ga_id" json:"ga_id"`
	GTMID           string `db:"gtm_id" json:"gtm_id"`

	// Dynamic SEO templates, rendered with {{kategori}}, {{lokasi}} and
	// {{site_title}} variables.
	LocationPageTitleTemplate       string `db:"location_page_title_template" json:"location_page_title_template"`
	LocationPageDescriptionTemplate string `db:"location_page_description_template" json:"location_page_description_template"`
	CategoryPageTitleTemplate       string `db:"category_page_title_template" json:"category_page_title_template"`
	CategoryPageDescriptionTemplate string `db:"category_page_description_template" json:"category_page_description_template"`

	// Archive page SEO.
	JobsTitle           string `db:"jobs_title" json:"jobs_title"`
	JobsDescription     string `db:"jobs_description" json:"jobs_description"`
	ArticlesTitle       string `db:"articles_title" json:"articles_title"`
	ArticlesDescription string `db:"articles_description" json:"articles_description"`

	// Auth and profile page SEO.
	LoginPageTitle        string `db:"login_page_title" json:"login_page_title"`
	LoginPageDescription  string `db:"login_page_description" json:"login_page_description"`
	SignupPageTitle       string `db:"signup_page_title" json:"signup_page_title"`
	SignupPageDescription string `db:"signup_page_description" json:"signup_page_description"`
	ProfilePageTitle      string `db:"profile_page_title" json:"profile_page_title"`
	ProfilePageDesc       string `db:"profile_page_description" json:"profile_page_description"`

	// Open Graph images.
	HomeOGImage           string `db:"home_og_image" json:"home_og_image"`
	JobsOGImage           string `db:"jobs_og_image" json:"jobs_og_image"`
	ArticlesOGImage       string `db:"articles_og_image" json:"articles_og_image"`
	DefaultJobOGImage     string `db:"default_job_og_image" json:"default_job_og_image"`
	DefaultArticleOGImage string `db:"default_article_og_image" json:"default_article_og_image"`

	// Crawling and sitemap.
	RobotsTxt             string    `db:"robots_txt" json:"robots_txt"`
	SitemapUpdateInterval int       `db:"sitemap_update_interval" json:"sitemap_update_interval"`
	AutoGenerateSitemap   bool      `db:"auto_generate_sitemap" json:"auto_generate_sitemap"`
	LastSitemapUpdate     time.Time `db:"last_sitemap_update" json:"last_sitemap_update"`

	// Advertisement snippets by placement.
	PopupAdCode          string `db:"popup_ad_code" json:"popup_ad_code"`
	SidebarArchiveAdCode string `db:"sidebar_archive_ad_code" json:"sidebar_archive_ad_code"`
	SidebarSingleAdCode  string `db:"sidebar_single_ad_code" json:"sidebar_single_ad_code"`
	SingleTopAdCode      string `db:"single_top_ad_code" json:"single_top_ad_code"`
	SingleBottomAdCode   string `db:"single_bottom_ad_code" json:"single_bottom_ad_code"`
	SingleMiddleAdCode   string `db:"single_middle_ad_code" json:"single_middle_ad_code"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AdCode returns the snippet configured for the placement, empty when the
// placement is unknown or unset.
func (s *SiteSettings) AdCode(position AdPosition) string {
	switch position {
	case AdPopup:
		return s.PopupAdCode
	case AdSidebarArchive:
		return s.SidebarArchiveAdCode
	case AdSidebarSingle:
		return s.SidebarSingleAdCode
	case AdSingleTop:
		return s.SingleTopAdCode
	case AdSingleBottom:
		return s.SingleBottomAdCode
	case AdSingleMiddle:
		return s.SingleMiddleAdCode
	default:
		return ""
	}
}
