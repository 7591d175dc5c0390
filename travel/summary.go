package travel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// placeholder is what display fields fall back to when the summary payload
// carries no value for them.
const placeholder = "/"

// summaryPayload mirrors the JSON document the off-chain analyzer embeds in a
// summary's content field.
type summaryPayload struct {
	ReviewCount struct {
		Positive int `json:"positive"`
		Neutral  int `json:"neutral"`
		Negative int `json:"negative"`
	} `json:"review_count"`
	PopularTags         []string `json:"popular_tags"`
	CoreFeedbackSummary string   `json:"core_feedback_summary"`
	DetailedAnalysis    struct {
		OverallRating      float64 `json:"overall_rating"`
		Location           string  `json:"location"`
		CrowdLevel         string  `json:"crowd_level"`
		BestSeason         string  `json:"best_season"`
		SuitablePeople     string  `json:"suitable_people"`
		PriceLevel         string  `json:"price_level"`
		SuggestedDuration  string  `json:"suggested_duration"`
		TrafficConvenience string  `json:"traffic_convenience"`
	} `json:"detailed_analysis"`
}

// reviewPayload mirrors the JSON document a structured review stores in its
// content field.
type reviewPayload struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func defaultAnalysis() SummaryAnalysis {
	return SummaryAnalysis{
		PopularTags:       []string{},
		PositiveRate:      placeholder,
		Location:          placeholder,
		CrowdLevel:        placeholder,
		BestSeason:        placeholder,
		SuitablePeople:    placeholder,
		PriceLevel:        placeholder,
		SuggestedDuration: placeholder,
		Transportation:    placeholder,
	}
}

// ParseSummaryContent decodes a summary's content payload. Content that is
// not valid JSON yields the default analysis; there is no error path, a
// summary always renders.
func ParseSummaryContent(content string) SummaryAnalysis {
	out := defaultAnalysis()
	var p summaryPayload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return out
	}
	out.Positive = p.ReviewCount.Positive
	out.Neutral = p.ReviewCount.Neutral
	out.Negative = p.ReviewCount.Negative
	if len(p.PopularTags) > 0 {
		out.PopularTags = p.PopularTags
	}
	out.CoreFeedback = p.CoreFeedbackSummary
	total := p.ReviewCount.Positive + p.ReviewCount.Neutral + p.ReviewCount.Negative
	if p.ReviewCount.Positive > 0 && total > 0 {
		out.PositiveRate = fmt.Sprintf("%.2f%%", float64(p.ReviewCount.Positive)/float64(total)*100)
	}
	d := p.DetailedAnalysis
	out.OverallRating = d.OverallRating
	for dst, src := range map[*string]string{
		&out.Location:          d.Location,
		&out.CrowdLevel:        d.CrowdLevel,
		&out.BestSeason:        d.BestSeason,
		&out.SuitablePeople:    d.SuitablePeople,
		&out.PriceLevel:        d.PriceLevel,
		&out.SuggestedDuration: d.SuggestedDuration,
		&out.Transportation:    d.TrafficConvenience,
	} {
		if src != "" {
			*dst = src
		}
	}
	return out
}

// ParseReviewContent splits a review's content field into text and tags.
// Structured reviews store a {"content","tags"} JSON object; legacy reviews
// store plain text, which comes back unchanged with no tags.
func ParseReviewContent(content string) (text string, tags []string) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return content, []string{}
	}
	var p reviewPayload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return content, []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p.Content, p.Tags
}
