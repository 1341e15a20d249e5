package metrics

import "strings"

// classifierRule maps a set of question keywords to a topic sub-category.
type classifierRule struct {
	category string
	keywords []string
}

// classifierRules is evaluated in order; the first matching rule wins. The
// order is load-bearing: "Zelensky peace talks" matches both the peace and
// political keyword sets and must classify as "peace". Keep this a slice,
// never a map.
var classifierRules = []classifierRule{
	{"peace", []string{"ceasefire", "peace", "truce", "armistice", "negotiation"}},
	{"territory", []string{"kherson", "crimea", "donetsk", "luhansk", "zaporizhzhia", "bakhmut", "kharkiv", "territory", "capture", "control of"}},
	{"political", []string{"zelensky", "putin", "election", "president", "government", "sanction", "regime"}},
	{"nuclear", []string{"nuclear", "tactical nuke"}},
	{"weapons", []string{"missile", "drone", "f-16", "himars", "atacms", "tank", "weapon"}},
	{"nato", []string{"nato", "article 5", "alliance"}},
}

// defaultCategory is assigned when no rule matches.
const defaultCategory = "general"

// Classify assigns a topic sub-category based on the market question.
func Classify(question string) string {
	q := strings.ToLower(question)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.category
			}
		}
	}
	return defaultCategory
}
