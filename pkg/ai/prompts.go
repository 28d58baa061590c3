package ai

import (
	"encoding/json"
	"fmt"
)

// System prompts for different AI report types
const (
	SalesReportSystemPrompt = `You are a professional business analyst for a direct-to-consumer skating equipment store.
Generate concise, actionable insights from sales data. Focus on:
- Key performance indicators and trends
- Growth opportunities and concerns
- Specific recommendations for business decisions
- Clear, executive-level language
Keep responses to 3-4 paragraphs maximum.`

	MembershipReportSystemPrompt = `You are a subscription analytics expert for a skating club storefront.
Analyze membership plan data and provide insights on:
- Plan uptake and active-subscriber trends
- Renewal and churn signals
- Pricing and duration recommendations
Write in a strategic, data-driven tone suitable for the store owner.
Keep responses to 3-4 paragraphs maximum.`
)

// formatDataPrompt serializes an aggregation result for the model, with a
// short framing line so the numbers are not free-floating.
func formatDataPrompt(label string, data interface{}) string {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%s (unserializable: %v)", label, err)
	}
	return fmt.Sprintf("%s, as JSON:\n%s", label, payload)
}
