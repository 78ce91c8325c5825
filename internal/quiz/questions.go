// Package quiz runs the skin-type questionnaire and maps the answers to a
// product recommendation.
package quiz

type Kind string

const (
	Single   Kind = "single"
	Multiple Kind = "multiple"
)

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Kind     Kind     `json:"type"`
	Options  []Option `json:"options"`
}

func (q Question) hasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Question ids with meaning for the result.
const (
	QuestionSkinType = 1
	QuestionConcerns = 2
)

// Questions is the fixed questionnaire, asked in order.
var Questions = []Question{
	{
		ID:       QuestionSkinType,
		Question: "How would you describe your skin type?",
		Kind:     Single,
		Options: []Option{
			{ID: "oily", Text: "Oily - Shiny, large pores, prone to breakouts"},
			{ID: "dry", Text: "Dry - Tight, flaky, sometimes rough"},
			{ID: "combination", Text: "Combination - Oily T-zone, dry cheeks"},
			{ID: "sensitive", Text: "Sensitive - Easily irritated, reactive"},
			{ID: "normal", Text: "Normal - Balanced, few concerns"},
		},
	},
	{
		ID:       QuestionConcerns,
		Question: "What are your main skin concerns? (Select all that apply)",
		Kind:     Multiple,
		Options: []Option{
			{ID: "acne", Text: "Acne & Breakouts"},
			{ID: "aging", Text: "Fine Lines & Wrinkles"},
			{ID: "dark-spots", Text: "Dark Spots & Hyperpigmentation"},
			{ID: "dullness", Text: "Dullness & Uneven Texture"},
			{ID: "pores", Text: "Large Pores"},
			{ID: "redness", Text: "Redness & Irritation"},
		},
	},
	{
		ID:       3,
		Question: "How often do you currently follow a skincare routine?",
		Kind:     Single,
		Options: []Option{
			{ID: "never", Text: "Never - I'm just starting out"},
			{ID: "sometimes", Text: "Sometimes - When I remember"},
			{ID: "daily", Text: "Daily - Morning or evening"},
			{ID: "twice-daily", Text: "Twice daily - Morning and evening"},
		},
	},
	{
		ID:       4,
		Question: "What's your age range?",
		Kind:     Single,
		Options: []Option{
			{ID: "teens", Text: "13-19 years"},
			{ID: "twenties", Text: "20-29 years"},
			{ID: "thirties", Text: "30-39 years"},
			{ID: "forties", Text: "40-49 years"},
			{ID: "fifties-plus", Text: "50+ years"},
		},
	},
	{
		ID:       5,
		Question: "How much time do you want to spend on your routine?",
		Kind:     Single,
		Options: []Option{
			{ID: "minimal", Text: "Minimal - 2-3 minutes"},
			{ID: "moderate", Text: "Moderate - 5-10 minutes"},
			{ID: "extensive", Text: "Extensive - 15+ minutes"},
		},
	},
}
