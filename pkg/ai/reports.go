package ai

import (
	"context"
	"time"

	"jpskating.in/store-api/pkg/mongo"
)

// AIReportResponse represents the structure of AI-generated reports
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// GenerateSalesReport narrates the per-day revenue aggregation plus the
// top-product ranking for the given window.
func GenerateSalesReport(ctx context.Context, from, to time.Time) (*AIReportResponse, error) {
	summary, err := mongo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch sales data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	topProducts, err := mongo.GetTopProducts(ctx, 10)
	if err != nil {
		topProducts = nil
	}

	raw := map[string]interface{}{
		"sales":        summary,
		"top_products": topProducts,
	}
	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: raw,
			Summary: "Sales data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatDataPrompt("Daily sales buckets and top products for the period", raw)
		aiInsights, err := generateCompletion(ctx, SalesReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated sales insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw sales data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateMembershipReport narrates plan uptake and active-subscriber counts.
func GenerateMembershipReport(ctx context.Context) (*AIReportResponse, error) {
	stats, err := mongo.GetMembershipStats(ctx)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch membership data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: stats,
			Summary: "Membership data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatDataPrompt("Per-plan subscription totals and currently-active counts", stats)
		aiInsights, err := generateCompletion(ctx, MembershipReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated membership insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw membership data (AI insights unavailable)"
	}

	return response, nil
}
