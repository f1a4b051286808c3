package domain

import "time"

// Status tracks a row through its one-directional lifecycle.
// Transitions only move forward: new -> planned -> written -> ready ->
// approved -> published. Leads use "new" or "passive" as terminal states.
type Status string

const (
	StatusNew       Status = "new"
	StatusPlanned   Status = "planned"
	StatusWritten   Status = "written"
	StatusReady     Status = "ready"
	StatusApproved  Status = "approved"
	StatusPublished Status = "published"
	StatusPassive   Status = "passive"
)

const (
	Pillar  = "pillar"
	Cluster = "cluster"
)

// ContentPlanItem is one planned article produced by the content strategist.
type ContentPlanItem struct {
	Keyword         string   `json:"keyword"`
	Title           string   `json:"title"`
	ContentType     string   `json:"content_type"`
	WordCount       int      `json:"word_count"`
	MetaDescription string   `json:"meta_description"`
	PillarOrCluster string   `json:"pillar_or_cluster"`
	InternalLinks   []string `json:"internal_links"`
	Priority        int      `json:"priority"`
}

// IsPillar reports whether the item is flagship pillar content.
func (i ContentPlanItem) IsPillar() bool {
	return i.PillarOrCluster == Pillar
}

// ContentPlan is the full strategist output: plan items plus the topical
// cluster map (pillar slug -> supporting slugs).
type ContentPlan struct {
	Items      []ContentPlanItem   `json:"content_plan"`
	ClusterMap map[string][]string `json:"cluster_map"`
}

// CalendarEntry is a ContentPlanItem with an assigned publish date.
// Immutable once assigned within a run.
type CalendarEntry struct {
	Title           string
	Keyword         string
	Type            string
	WordCount       int
	PublishDate     time.Time
	Status          Status
	Priority        int
	PillarOrCluster string
	Slug            string
	MetaDescription string
	InternalLinks   []string
}

// QueueRow is one keyword awaiting its next pipeline stage.
type QueueRow struct {
	Keyword          string
	Volume           int
	Intent           string
	OpportunityScore float64
	Status           Status
	Source           string
	Date             string
}

// KeywordMetric carries provider data for a single keyword.
type KeywordMetric struct {
	Keyword          string  `json:"keyword"`
	SearchVolume     int     `json:"search_volume"`
	Competition      float64 `json:"competition"`
	CompetitionLevel string  `json:"competition_level"`
	CPC              float64 `json:"cpc"`
}

// ClusteredKeyword is a keyword after intent clustering and scoring.
type ClusteredKeyword struct {
	Keyword          string  `json:"keyword"`
	SearchVolume     int     `json:"search_volume"`
	Competition      string  `json:"competition"`
	CPC              float64 `json:"cpc"`
	OpportunityScore float64 `json:"opportunity_score"`
	Source           string  `json:"source"`
}

// KeywordCluster groups keywords that share a search intent.
type KeywordCluster struct {
	Intent   string             `json:"intent"`
	Keywords []ClusteredKeyword `json:"keywords"`
}

// TopOpportunity is a highlighted keyword from the clustering result.
type TopOpportunity struct {
	Keyword          string  `json:"keyword"`
	OpportunityScore float64 `json:"opportunity_score"`
	Intent           string  `json:"intent"`
}

// ClusteringResult is the full clustering response.
type ClusteringResult struct {
	Clusters         []KeywordCluster `json:"clusters"`
	TotalKeywords    int              `json:"total_keywords"`
	TopOpportunities []TopOpportunity `json:"top_opportunities"`
}

// ContentGap is one competitor weakness worth targeting.
type ContentGap struct {
	Keyword       string `json:"keyword"`
	Competitor    string `json:"competitor"`
	Gap           string `json:"gap"`
	Opportunity   string `json:"opportunity"`
	SuggestedType string `json:"suggested_type"`
}
