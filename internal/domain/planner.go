package domain

// CampaignBrief is the advertiser's input to the campaign planner.
type CampaignBrief struct {
	Goal               string  `json:"goal" binding:"required"`
	ProductDescription string  `json:"productDescription" binding:"required"`
	TargetAudience     string  `json:"targetAudience"`
	Budget             float64 `json:"budget" binding:"required,gt=0"`
	StartDate          string  `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate            string  `json:"endDate"`
}

// Suggestion is one ranked ad space returned by the planner, with reach and
// cost estimated over the campaign window.
type Suggestion struct {
	AdSpaceID      int     `json:"ad_space_id"`
	Title          string  `json:"title"`
	Score          int     `json:"score"` // 0-100
	Reason         string  `json:"reason"`
	EstimatedReach int64   `json:"estimated_reach"`
	EstimatedCost  float64 `json:"estimated_cost"`
}
