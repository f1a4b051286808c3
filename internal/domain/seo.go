package domain

// AuditCheck is one scored factor from the SEO quality audit.
type AuditCheck struct {
	Factor string `json:"factor"`
	Score  int    `json:"score"`
	Pass   bool   `json:"pass"`
	Note   string `json:"note"`
}

// SEOAuditResult drives the rewrite-or-accept decision.
type SEOAuditResult struct {
	OverallScore    int          `json:"overall_score"`
	Checks          []AuditCheck `json:"checks"`
	Issues          []string     `json:"issues"`
	Recommendations []string     `json:"recommendations"`
}

// SEOMeta is the metadata bundle generated per article.
type SEOMeta struct {
	MetaTitle          string         `json:"meta_title"`
	MetaDescription    string         `json:"meta_description"`
	Slug               string         `json:"slug"`
	FocusKeyword       string         `json:"focus_keyword"`
	SecondaryKeywords  []string       `json:"secondary_keywords"`
	SchemaMarkup       map[string]any `json:"schema_markup"`
	OGTitle            string         `json:"og_title"`
	OGDescription      string         `json:"og_description"`
	TwitterTitle       string         `json:"twitter_title"`
	TwitterDescription string         `json:"twitter_description"`
}

// Article is a written piece heading for the publish queue.
type Article struct {
	Title       string
	Keyword     string
	HTML        string
	Meta        SEOMeta
	PublishDate string
	SEOScore    int
	WordCount   int
	Rewrites    int
}

// PublishedPost is the CMS response after publishing.
type PublishedPost struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// SocialPost is one repurposed social snippet for a published article.
type SocialPost struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`
	Hashtags string `json:"hashtags"`
}
