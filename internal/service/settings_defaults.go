package service

import (
	"time"

	"github.com/nexjob/nexjob-api/internal/models"
	"github.com/nexjob/nexjob-api/pkg/config"
)

// DefaultSettings builds the hardcoded last-resort settings tier from static
// configuration. Served when every database tier is unreachable, and used as
// the base row when settings are saved for the first time.
func DefaultSettings(site config.SiteConfig, wp config.WordPressConfig) *models.SiteSettings {
	now := time.Now().UTC()
	return &models.SiteSettings{
		WPAPIURL:        wp.APIURL,
		WPFiltersAPIURL: wp.FiltersAPIURL,
		WPPostsAPIURL:   wp.PostsAPIURL,
		WPJobsAPIURL:    wp.JobsAPIURL,
		WPAuthToken:     wp.AuthToken,

		SiteTitle:       site.Title,
		SiteTagline:     site.Tagline,
		SiteDescription: site.Description,
		SiteURL:         site.URL,
		GAID:            site.GAID,
		GTMID:           site.GTMID,

		LocationPageTitleTemplate:       "Lowongan Kerja di {{lokasi}} Terbaru - {{site_title}}",
		LocationPageDescriptionTemplate: "Temukan lowongan kerja terbaru di {{lokasi}}. Ribuan peluang karir menanti Anda di {{site_title}}.",
		CategoryPageTitleTemplate:       "Lowongan Kerja {{kategori}} Terbaru - {{site_title}}",
		CategoryPageDescriptionTemplate: "Temukan lowongan kerja {{kategori}} terbaru. Ribuan peluang karir menanti Anda di {{site_title}}.",

		JobsTitle:           "Lowongan Kerja Terbaru - " + site.Title,
		JobsDescription:     "Temukan ribuan lowongan kerja terbaru dari perusahaan terpercaya di seluruh Indonesia.",
		ArticlesTitle:       "Artikel Karir - " + site.Title,
		ArticlesDescription: "Tips karir, panduan interview, dan informasi dunia kerja terkini.",

		LoginPageTitle:        "Masuk - " + site.Title,
		LoginPageDescription:  "Masuk ke akun " + site.Title + " Anda.",
		SignupPageTitle:       "Daftar - " + site.Title,
		SignupPageDescription: "Buat akun " + site.Title + " gratis dan mulai karir impian Anda.",
		ProfilePageTitle:      "Profil Saya - " + site.Title,
		ProfilePageDesc:       "Kelola profil dan preferensi akun Anda.",

		RobotsTxt: "User-agent: *\nAllow: /\n\nSitemap: " + site.URL + "/sitemap.xml",

		SitemapUpdateInterval: 3600,
		AutoGenerateSitemap:   true,

		CreatedAt: now,
		UpdatedAt: now,
	}
}
