package travel

import "testing"

func TestParseSummaryContentDefaults(t *testing.T) {
	for _, in := range []string{"", "not json", "Pending AI analysis."} {
		got := ParseSummaryContent(in)
		if got.Positive != 0 || got.Neutral != 0 || got.Negative != 0 {
			t.Errorf("counts for %q = %d/%d/%d, want zeros", in, got.Positive, got.Neutral, got.Negative)
		}
		if len(got.PopularTags) != 0 {
			t.Errorf("tags for %q = %v, want empty", in, got.PopularTags)
		}
		if got.CoreFeedback != "" {
			t.Errorf("CoreFeedback for %q = %q, want empty", in, got.CoreFeedback)
		}
		for name, v := range map[string]string{
			"PositiveRate":      got.PositiveRate,
			"Location":          got.Location,
			"CrowdLevel":        got.CrowdLevel,
			"BestSeason":        got.BestSeason,
			"SuitablePeople":    got.SuitablePeople,
			"PriceLevel":        got.PriceLevel,
			"SuggestedDuration": got.SuggestedDuration,
			"Transportation":    got.Transportation,
		} {
			if v != "/" {
				t.Errorf("%s for %q = %q, want placeholder", name, in, v)
			}
		}
	}
}

func TestParseSummaryContent(t *testing.T) {
	payload := `{
		"review_count": {"positive": 3, "neutral": 2, "negative": 1},
		"popular_tags": ["sunset", "hiking"],
		"core_feedback_summary": "Great views, long queues.",
		"detailed_analysis": {
			"overall_rating": 4.3,
			"location": "West Lake",
			"crowd_level": "high",
			"best_season": "autumn",
			"suitable_people": "families",
			"price_level": "moderate",
			"suggested_duration": "half a day",
			"traffic_convenience": "metro nearby"
		}
	}`
	got := ParseSummaryContent(payload)
	if got.Positive != 3 || got.Neutral != 2 || got.Negative != 1 {
		t.Errorf("counts = %d/%d/%d", got.Positive, got.Neutral, got.Negative)
	}
	if got.PositiveRate != "50.00%" {
		t.Errorf("PositiveRate = %q, want 50.00%%", got.PositiveRate)
	}
	if got.OverallRating != 4.3 {
		t.Errorf("OverallRating = %v", got.OverallRating)
	}
	if len(got.PopularTags) != 2 || got.PopularTags[0] != "sunset" {
		t.Errorf("PopularTags = %v", got.PopularTags)
	}
	if got.CoreFeedback != "Great views, long queues." {
		t.Errorf("CoreFeedback = %q", got.CoreFeedback)
	}
	if got.BestSeason != "autumn" || got.Transportation != "metro nearby" {
		t.Errorf("analysis fields = %q/%q", got.BestSeason, got.Transportation)
	}
}

func TestParseSummaryContentNoPositives(t *testing.T) {
	got := ParseSummaryContent(`{"review_count": {"positive": 0, "neutral": 1, "negative": 2}}`)
	if got.PositiveRate != "/" {
		t.Errorf("PositiveRate = %q, want placeholder when nothing positive", got.PositiveRate)
	}
}

func TestParseReviewContent(t *testing.T) {
	cases := []struct {
		in       string
		wantText string
		wantTags int
	}{
		{"plain old review text", "plain old review text", 0},
		{`{"content":"lovely place","tags":["view","food"]}`, "lovely place", 2},
		{`{"content":"no tags"}`, "no tags", 0},
		{`{broken json`, `{broken json`, 0},
		{`  {"content":"padded"}  `, "padded", 0},
	}
	for _, c := range cases {
		text, tags := ParseReviewContent(c.in)
		if text != c.wantText {
			t.Errorf("text for %q = %q, want %q", c.in, text, c.wantText)
		}
		if len(tags) != c.wantTags {
			t.Errorf("tags for %q = %v, want %d entries", c.in, tags, c.wantTags)
		}
	}
}
