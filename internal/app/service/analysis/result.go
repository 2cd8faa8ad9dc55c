package analysis

import (
	"bytes"
	"encoding/json"

	"github.com/subtrackr/subtrackr/internal/models"
	"github.com/subtrackr/subtrackr/pkg/types"
)

type InsightType string

const (
	InsightTypeWarning InsightType = "warning"
	InsightTypeInfo    InsightType = "info"
	InsightTypeSuccess InsightType = "success"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is a qualitative observation about the portfolio.
type Insight struct {
	Type     InsightType `json:"type"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Priority Priority    `json:"priority"`
}

type RecommendationType string

const (
	RecommendationTypeOptimization RecommendationType = "optimization"
	RecommendationTypeReview       RecommendationType = "review"
	RecommendationTypeSavings      RecommendationType = "savings"
	RecommendationTypeDuplicate    RecommendationType = "duplicate"
	RecommendationTypeHighCost     RecommendationType = "high_cost"
)

// Recommendation is an actionable suggestion with an estimated saving.
// The same shape is used for both recommendations and savings opportunities;
// the two lists deliberately overlap on the cost-threshold rules and are
// presented to callers as separate channels.
type Recommendation struct {
	Type             RecommendationType `json:"type"`
	Title            string             `json:"title"`
	Message          string             `json:"message"`
	PotentialSavings float64            `json:"potential_savings"`
	Action           string             `json:"action"`
	SubscriptionID   string             `json:"subscription_id,omitempty"`
}

// CategoryStats aggregates the active subscriptions of one category.
type CategoryStats struct {
	Count         int                    `json:"count"`
	TotalMonthly  float64                `json:"total_monthly"`
	Subscriptions []*models.Subscription `json:"subscriptions"`
}

// CategoryBreakdown is a category -> stats mapping that preserves the
// insertion order of first occurrence. It marshals as a JSON object.
type CategoryBreakdown struct {
	order []types.Category
	stats map[types.Category]*CategoryStats
}

func NewCategoryBreakdown() *CategoryBreakdown {
	return &CategoryBreakdown{stats: map[types.Category]*CategoryStats{}}
}

// Get returns the stats for a category, or nil if the category is absent.
func (b *CategoryBreakdown) Get(c types.Category) *CategoryStats {
	return b.stats[c]
}

// Upsert returns the stats for a category, creating an empty entry at the
// end of the iteration order on first use.
func (b *CategoryBreakdown) Upsert(c types.Category) *CategoryStats {
	if s, ok := b.stats[c]; ok {
		return s
	}
	s := &CategoryStats{}
	b.stats[c] = s
	b.order = append(b.order, c)
	return s
}

// Categories returns the category keys in insertion order.
func (b *CategoryBreakdown) Categories() []types.Category {
	return b.order
}

func (b *CategoryBreakdown) Len() int {
	return len(b.order)
}

func (b *CategoryBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range b.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(b.stats[c])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (b *CategoryBreakdown) UnmarshalJSON(data []byte) error {
	m := map[types.Category]*CategoryStats{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	b.stats = m
	b.order = b.order[:0]
	for c := range m {
		b.order = append(b.order, c)
	}
	return nil
}

// Result is the full portfolio analysis. It is ephemeral: computed per
// request from a subscription snapshot and never persisted.
type Result struct {
	TotalSpending        float64            `json:"total_spending"`
	MonthlySpending      float64            `json:"monthly_spending"`
	YearlySpending       float64            `json:"yearly_spending"`
	Categories           *CategoryBreakdown `json:"categories"`
	Insights             []Insight          `json:"insights"`
	Recommendations      []Recommendation   `json:"recommendations"`
	HealthScore          int                `json:"health_score"`
	SavingsOpportunities []Recommendation   `json:"savings_opportunities"`
}
