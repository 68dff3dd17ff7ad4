package verification

import "strings"

// Category is the fine-grained activity category inferred from free text.
type Category string

const (
	CategoryWebinar       Category = "webinar"
	CategoryTraining      Category = "training"
	CategoryConference    Category = "conference"
	CategoryCourse        Category = "course"
	CategoryCertification Category = "certification"
	CategoryVolunteer     Category = "volunteer"
	CategorySelfStudy     Category = "self-study"
)

// categoryKeywords is evaluated in order; the first category with at least
// one substring hit wins. Keyword sets overlap ("training conference" hits
// both Training and Conference), so the order is part of the contract.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryWebinar, []string{"webinar", "seminar", "presentation"}},
	{CategoryTraining, []string{"training", "workshop", "bootcamp"}},
	{CategoryConference, []string{"conference", "symposium", "summit"}},
	{CategoryCourse, []string{"course", "class", "curriculum"}},
	{CategoryCertification, []string{"certification", "exam", "test"}},
	{CategoryVolunteer, []string{"volunteer", "community", "mentor"}},
}

// Classify maps a free-text activity description to a Category. It always
// returns a value; descriptions with no recognized keyword fall back to
// self-study. Matching is case-insensitive substring containment, which is
// a deliberately blunt heuristic: it trades false positives for simplicity.
func Classify(description string) Category {
	text := strings.ToLower(description)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}

	return CategorySelfStudy
}
