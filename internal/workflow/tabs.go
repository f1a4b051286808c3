package workflow

// Spreadsheet tab names. Every tab is a typed table with a fixed header row.
const (
	TabNicheInputs       = "NicheInputs"
	TabKeywordResearch   = "KeywordResearch"
	TabContentGaps       = "ContentGaps"
	TabContentQueue      = "ContentQueue"
	TabContentCalendar   = "ContentCalendar"
	TabBlogOutlines      = "BlogOutlines"
	TabClusterMap        = "ClusterMap"
	TabPublishQueue      = "PublishQueue"
	TabImageLibrary      = "ImageLibrary"
	TabPublishedArticles = "PublishedArticles"
	TabSocialPosts       = "SocialPosts"
	TabIncomingLeads     = "IncomingLeads"
	TabMasterLeadList    = "MasterLeadList"
	TabRejectedLeads     = "RejectedLeads"
	TabFollowUpTracker   = "FollowUpTracker"
	TabEmailSubscribers  = "EmailSubscribers"
	TabEmailPerformance  = "EmailPerformance"
	TabDailyMetrics      = "DailyMetrics"
	TabKeywordRankings   = "KeywordRankings"
	TabOptimizationLog   = "OptimizationLog"
)

// Column headers per tab, in sheet order.
var (
	headersKeywordResearch = []string{"Keyword", "Search Volume", "Competition", "CPC", "Opportunity Score", "Intent", "Source", "Date"}
	headersContentGaps     = []string{"Keyword", "Competitor", "Gap", "Opportunity", "Suggested Type", "Date"}
	headersContentQueue    = []string{"Keyword", "Volume", "Intent", "Opportunity Score", "Status", "Source", "Date"}
	headersContentCalendar = []string{"Publish Date", "Title", "Keyword", "Type", "Word Count", "Priority", "Pillar/Cluster", "Slug", "Meta Description", "Internal Links", "Status"}
	headersBlogOutlines    = []string{"Keyword", "Title", "Outline", "Date"}
	headersClusterMap      = []string{"Pillar", "Supporting"}
	headersPublishQueue    = []string{"Title", "Keyword", "Slug", "Meta Title", "Meta Description", "HTML", "Publish Date", "SEO Score", "Rewrites", "Status"}
	headersImageLibrary    = []string{"Keyword", "Title", "Prompt", "Image URL", "Date"}
	headersPublished       = []string{"Title", "Keyword", "Slug", "URL", "Post ID", "Publish Date"}
	headersSocialPosts     = []string{"Title", "URL", "Platform", "Text", "Hashtags", "Date"}
	headersMasterLeadList  = []string{"Name", "Email", "Company", "Source", "Lead Magnet", "Phone", "Score", "Tier", "Status", "Reasoning", "Date"}
	headersRejectedLeads   = []string{"Name", "Email", "Issues", "Date"}
	headersFollowUp        = []string{"Email", "Name", "Tier", "Step", "Send Day", "Type", "Subject", "Body", "Date"}
	headersEmailPerf       = []string{"Date", "Campaign", "Subject", "Recipients"}
	headersDailyMetrics    = []string{"Date", "Sessions", "Users", "Bounce Rate", "Conversions", "Organic Sessions"}
	headersRankings        = []string{"Date", "Keyword", "Impressions", "Clicks", "CTR", "Position", "Page"}
	headersOptimization    = []string{"Date", "URL", "Issues", "Actions"}
)
