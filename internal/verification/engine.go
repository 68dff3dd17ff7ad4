package verification

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Method records how a verdict was reached.
type Method string

const (
	MethodManual              Method = "manual"
	MethodProviderRecognition Method = "provider_recognition"
	MethodDocumentReview      Method = "document_review"
	MethodKeywordAnalysis     Method = "keyword_analysis"
	MethodAuthorityRules      Method = "authority_rules"
)

// ActivityInput carries everything the engine needs to judge one activity.
// It is read-only for the duration of a Verify call.
type ActivityInput struct {
	Description   string
	DeclaredType  string
	DeclaredValue float64
	Authority     Authority
	HasProof      bool
}

// Verdict is the engine's output. SuggestedValue is always within the
// authority rule bounds when a rule exists for the inferred category,
// otherwise it equals the declared value. Verified is never true with
// MethodManual, and Notes is never empty.
type Verdict struct {
	Verified       bool    `json:"verified"`
	SuggestedValue float64 `json:"suggested_cpe_value"`
	Method         Method  `json:"verification_method"`
	Notes          string  `json:"verification_notes"`
}

// confidenceKeywords backs the keyword-confidence signal, keyed by the
// rule-table category. A high score only annotates the notes; it never
// flips the verdict to verified on its own.
var confidenceKeywords = map[RuleCategory][]string{
	RuleCategoryTraining:   {"course", "certification", "bootcamp", "training program", "class"},
	RuleCategoryConference: {"conference", "summit", "symposium", "expo", "convention"},
	RuleCategoryWebinar:    {"webinar", "online session", "virtual training", "web seminar"},
	RuleCategoryWorkshop:   {"workshop", "hands-on", "lab", "practical session"},
	RuleCategoryEducation:  {"university", "degree", "academic", "research", "study"},
}

const keywordConfidenceThreshold = 0.7

// Engine verifies CPE activities against authority rules and provider
// recognition heuristics. It holds only immutable tables, so a single
// instance is safe for unsynchronized concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a verification engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Verify produces a verdict for one activity. It never fails: any internal
// fault degrades to an unverified manual-review verdict carrying the
// declared value unchanged. Verification is advisory, not a gatekeeper.
func (e *Engine) Verify(input ActivityInput) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("activity verification fault",
				zap.Any("cause", r),
				zap.String("authority", string(input.Authority)))
			verdict = Verdict{
				Verified:       false,
				SuggestedValue: input.DeclaredValue,
				Method:         MethodManual,
				Notes:          "Verification error occurred. Manual review required.",
			}
		}
	}()

	category := Classify(input.Description)
	ruleCategory := ReduceCategory(category)
	recognized := IsRecognizedProvider(input.Description)

	var notes []string

	// Bounding applies whenever a rule exists, independent of which
	// verification branch fires below.
	suggested := input.DeclaredValue
	if rule, ok := LookupRule(input.Authority, ruleCategory); ok {
		switch {
		case input.DeclaredValue < rule.Min:
			suggested = rule.Min
			notes = append(notes, fmt.Sprintf(
				"CPE value increased to meet %s minimum of %g for %s.",
				input.Authority, rule.Min, ruleCategory))
		case input.DeclaredValue > rule.Max:
			suggested = rule.Max
			notes = append(notes, fmt.Sprintf(
				"CPE value capped at %s maximum of %g for %s.",
				input.Authority, rule.Max, ruleCategory))
		}
	}

	verdict = Verdict{SuggestedValue: suggested}

	switch {
	case recognized && input.HasProof:
		verdict.Verified = true
		verdict.Method = MethodProviderRecognition
		notes = append(notes, "Auto-verified: recognized training provider with proof documentation.")
	case recognized:
		verdict.Verified = true
		verdict.Method = MethodProviderRecognition
		notes = append(notes, "Auto-verified: recognized training provider.")
	case input.HasProof:
		verdict.Method = MethodDocumentReview
		notes = append(notes, "Proof document uploaded. Manual review recommended for final verification.")
	default:
		verdict.Method = MethodManual
		notes = append(notes, "Manual verification required. Consider uploading proof documentation.")
	}

	if !verdict.Verified {
		if confidence := keywordConfidence(input.Description, ruleCategory); confidence > keywordConfidenceThreshold {
			notes = append(notes, fmt.Sprintf(
				"High confidence match for %s activity based on description keywords.",
				ruleCategory))
		}
	}

	verdict.Notes = strings.Join(notes, " ")

	e.logger.Debug("activity verified",
		zap.String("authority", string(input.Authority)),
		zap.String("category", string(category)),
		zap.Bool("verified", verdict.Verified),
		zap.String("method", string(verdict.Method)),
		zap.Float64("suggested_value", verdict.SuggestedValue))

	return verdict
}

// keywordConfidence scores how many category-specific keywords appear in
// the description, as a fraction of the category's keyword list.
func keywordConfidence(description string, category RuleCategory) float64 {
	keywords := confidenceKeywords[category]
	if len(keywords) == 0 {
		return 0
	}

	text := strings.ToLower(description)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}

	confidence := float64(matches) / float64(len(keywords))
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
