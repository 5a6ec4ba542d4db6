package lexicon

import "strings"

// Topic groups the related vocabulary of one subject area.
type Topic struct {
	Name     string
	Triggers []string // words whose presence in content signals the topic
	Phrases  []string // contextual keyword phrases suggested for the topic
	Related  []string // terms that make a sentence a good home for a topic keyword
}

// Topics is ordered; scans walk it front to back so results are stable.
var Topics = []Topic{
	{
		Name:     "technology",
		Triggers: []string{"technology", "software", "digital", "data", "cloud", "computer", "app", "ai", "automation"},
		Phrases:  []string{"digital transformation", "technology solutions", "software development"},
		Related:  []string{"software", "digital", "data", "cloud", "platform", "innovation"},
	},
	{
		Name:     "business",
		Triggers: []string{"business", "company", "companies", "market", "customer", "customers", "revenue", "growth", "strategy"},
		Phrases:  []string{"business strategy", "business growth", "customer experience"},
		Related:  []string{"company", "growth", "strategy", "customer", "revenue", "market"},
	},
	{
		Name:     "marketing",
		Triggers: []string{"marketing", "brand", "advertising", "campaign", "seo", "audience", "content"},
		Phrases:  []string{"content marketing", "digital marketing", "brand awareness"},
		Related:  []string{"brand", "campaign", "audience", "content", "seo", "advertising"},
	},
	{
		Name:     "health",
		Triggers: []string{"health", "medical", "wellness", "fitness", "doctor", "patient", "nutrition"},
		Phrases:  []string{"health and wellness", "healthy lifestyle", "medical care"},
		Related:  []string{"medical", "wellness", "fitness", "patient", "nutrition", "care"},
	},
	{
		Name:     "education",
		Triggers: []string{"education", "learning", "student", "students", "school", "course", "teaching"},
		Phrases:  []string{"online learning", "educational resources", "student success"},
		Related:  []string{"learning", "student", "school", "course", "teaching", "training"},
	},
	{
		Name:     "finance",
		Triggers: []string{"finance", "financial", "investment", "money", "budget", "bank", "banking"},
		Phrases:  []string{"financial planning", "investment strategy", "personal finance"},
		Related:  []string{"investment", "money", "budget", "bank", "financial", "savings"},
	},
}

// TopicsForKeyword returns the topics a keyword belongs to: the keyword names
// the topic or shares a word with its related terms or triggers.
func TopicsForKeyword(keyword string) []Topic {
	kwWords := Words(keyword)
	var out []Topic
	for _, t := range Topics {
		if matchesTopic(kwWords, t) {
			out = append(out, t)
		}
	}
	return out
}

func matchesTopic(kwWords []string, t Topic) bool {
	for _, w := range kwWords {
		if strings.HasPrefix(w, t.Name) || (len(w) >= 4 && strings.HasPrefix(t.Name, w)) {
			return true
		}
		for _, r := range t.Related {
			if w == r {
				return true
			}
		}
		for _, tr := range t.Triggers {
			if w == tr {
				return true
			}
		}
	}
	return false
}
