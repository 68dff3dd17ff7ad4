package verification

// Authority identifies a certification-issuing body with its own CPE
// accounting rules. Values outside the known set are valid input and simply
// find no rule.
type Authority string

const (
	AuthorityISC2      Authority = "ISC²"
	AuthorityECCouncil Authority = "EC-Council"
	AuthorityCompTIA   Authority = "CompTIA"
	AuthorityOffSec    Authority = "OffSec"
)

// KnownAuthorities lists the authorities with a defined rule set, in the
// order they are presented to users.
var KnownAuthorities = []Authority{
	AuthorityISC2,
	AuthorityECCouncil,
	AuthorityCompTIA,
	AuthorityOffSec,
}

// RuleCategory is the coarse category the authority rule table is keyed by.
// It is a smaller set than Category; ReduceCategory maps between the two.
type RuleCategory string

const (
	RuleCategoryConference RuleCategory = "Conference"
	RuleCategoryTraining   RuleCategory = "Training"
	RuleCategoryWebinar    RuleCategory = "Webinar"
	RuleCategoryWorkshop   RuleCategory = "Workshop"
	RuleCategoryEducation  RuleCategory = "Education"
)

// Rule bounds the CPE value an authority accepts for an activity category.
type Rule struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// authorityRules is loaded once and never mutated; concurrent reads need no
// synchronization.
var authorityRules = map[Authority]map[RuleCategory]Rule{
	AuthorityISC2: {
		RuleCategoryConference: {Min: 1.0, Max: 8.0, Default: 4.0},
		RuleCategoryTraining:   {Min: 0.5, Max: 40.0, Default: 2.0},
		RuleCategoryWebinar:    {Min: 0.25, Max: 2.0, Default: 1.0},
		RuleCategoryWorkshop:   {Min: 1.0, Max: 8.0, Default: 4.0},
		RuleCategoryEducation:  {Min: 0.5, Max: 10.0, Default: 1.0},
	},
	AuthorityECCouncil: {
		RuleCategoryConference: {Min: 1.0, Max: 16.0, Default: 8.0},
		RuleCategoryTraining:   {Min: 1.0, Max: 20.0, Default: 4.0},
		RuleCategoryWebinar:    {Min: 0.5, Max: 2.0, Default: 1.0},
		RuleCategoryWorkshop:   {Min: 2.0, Max: 8.0, Default: 4.0},
		RuleCategoryEducation:  {Min: 1.0, Max: 5.0, Default: 2.0},
	},
	AuthorityCompTIA: {
		RuleCategoryConference: {Min: 2.0, Max: 10.0, Default: 6.0},
		RuleCategoryTraining:   {Min: 1.0, Max: 10.0, Default: 3.0},
		RuleCategoryWebinar:    {Min: 0.5, Max: 2.0, Default: 1.0},
		RuleCategoryWorkshop:   {Min: 1.0, Max: 6.0, Default: 3.0},
		RuleCategoryEducation:  {Min: 0.5, Max: 4.0, Default: 1.0},
	},
	AuthorityOffSec: {
		RuleCategoryConference: {Min: 1.0, Max: 12.0, Default: 6.0},
		RuleCategoryTraining:   {Min: 2.0, Max: 40.0, Default: 8.0},
		RuleCategoryWebinar:    {Min: 0.5, Max: 2.0, Default: 1.0},
		RuleCategoryWorkshop:   {Min: 4.0, Max: 16.0, Default: 8.0},
		RuleCategoryEducation:  {Min: 1.0, Max: 8.0, Default: 2.0},
	},
}

// LookupRule returns the bounding rule for an (authority, category) pair.
// A missing rule is an expected outcome for unknown authorities, not an
// error; callers skip bounding when ok is false.
func LookupRule(authority Authority, category RuleCategory) (Rule, bool) {
	categories, ok := authorityRules[authority]
	if !ok {
		return Rule{}, false
	}
	rule, ok := categories[category]
	return rule, ok
}

// ReduceCategory maps a classifier category into the coarser rule-table set.
// Courses and additional certifications are bounded as formal training;
// volunteer work and self-study fall under general education.
func ReduceCategory(category Category) RuleCategory {
	switch category {
	case CategoryWebinar:
		return RuleCategoryWebinar
	case CategoryTraining, CategoryCourse, CategoryCertification:
		return RuleCategoryTraining
	case CategoryConference:
		return RuleCategoryConference
	default:
		return RuleCategoryEducation
	}
}
