package site

import (
	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/identity"
)

// DefaultArticlesVersion tags the article defaults below. Bump it whenever
// DefaultArticles changes so stored copies are reseeded.
const DefaultArticlesVersion = "2024.06-v3"

// DefaultSettings returns the settings shipped with the site. The admin
// password is "admin".
func DefaultSettings() Settings {
	return Settings{
		Brand: Brand{
			Name:         "Northwind Studio",
			Tagline:      "Small team, careful work.",
			PrimaryColor: "#1f3a5f",
			AccentColor:  "#f29f05",
		},
		Features: map[string]bool{
			"blog":         true,
			"testimonials": true,
			"contact_form": true,
			"newsletter":   false,
		},
		Pages: []PageConfig{
			{ID: "home", Label: "Home", Path: "/", Enabled: true, Order: 1},
			{ID: "services", Label: "Services", Path: "/services", Enabled: true, Order: 2},
			{ID: "about", Label: "About", Path: "/about", Enabled: true, Order: 3},
			{ID: "blog", Label: "Blog", Path: "/blog", Enabled: true, Order: 4},
			{ID: "contact", Label: "Contact", Path: "/contact", Enabled: true, Order: 5},
		},
		AdminPasswordHash: auth.DefaultAdminHash,
	}
}

// DefaultArticles returns the placeholder articles governed by
// DefaultArticlesVersion. Ids are derived from the slugs so every reseed
// produces the same collection.
func DefaultArticles() ArticlesData {
	return ArticlesData{Articles: []Article{
		seedArticle(
			"welcome-to-our-new-site",
			"Welcome to our new site",
			"2024-06-03",
			"news",
			"We rebuilt the site from the ground up.",
			"## A fresh start\n\nAfter years on the old platform we finally moved to something **simple** and fast.\n\n- faster pages\n- cleaner navigation\n- a proper blog\n\n**Thanks for visiting**",
		),
		seedArticle(
			"how-we-plan-a-project",
			"How we plan a project",
			"2024-06-10",
			"process",
			"A short tour of our planning routine.",
			"## Discovery\n\nEvery engagement starts with a **one week** discovery sprint.\n\n### What you get\nA written scope.\nA fixed estimate.\n\n* kickoff call\n* site audit\n* roadmap",
		),
		seedArticle(
			"five-tips-for-a-faster-website",
			"Five tips for a faster website",
			"2024-06-17",
			"guides",
			"Small changes that make a visible difference.",
			"# Speed matters\n\nVisitors leave slow pages.\n\n- compress images\n- cache aggressively\n- trim third-party scripts\n- prefer system fonts\n- measure before and after",
		),
	}}
}

func seedArticle(slug, title, date, category, excerpt, content string) Article {
	return Article{
		ID:       identity.ArticleUUID(slug).String(),
		Title:    title,
		Slug:     slug,
		Date:     date,
		Category: category,
		Excerpt:  excerpt,
		Content:  content,
		Status:   StatusPublished,
	}
}
