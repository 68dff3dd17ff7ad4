package recommendations

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxRecommendations caps what one request returns.
const maxRecommendations = 10

// Recommendation is one suggested CPE-earning activity.
type Recommendation struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Source      string  `json:"source"`
	CPEValue    float64 `json:"cpe_value"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
}

// Fetcher pulls live recommendations from an authority's portal. It is
// optional; any failure falls back to the curated lists.
type Fetcher interface {
	Fetch(ctx context.Context, authority string) ([]Recommendation, error)
}

// Engine produces activity suggestions per authority. Suggestions are
// best-effort: the engine never returns an error, only shorter lists.
type Engine struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewEngine creates a recommendation engine. fetcher may be nil.
func NewEngine(fetcher Fetcher, logger *zap.Logger) *Engine {
	return &Engine{fetcher: fetcher, logger: logger}
}

// Recommendations returns up to maxRecommendations suggestions for an
// authority: live results when a fetcher is configured and succeeds,
// curated authority and general lists otherwise.
func (e *Engine) Recommendations(ctx context.Context, authority string) []Recommendation {
	var recs []Recommendation

	if e.fetcher != nil {
		live, err := e.fetcher.Fetch(ctx, authority)
		if err != nil {
			e.logger.Warn("Live recommendation fetch failed, using curated lists",
				zap.String("authority", authority),
				zap.Error(err))
		} else {
			recs = append(recs, live...)
		}
	}

	recs = append(recs, authorityRecommendations(authority)...)
	recs = append(recs, generalRecommendations...)

	if len(recs) == 0 {
		recs = append(recs, fallbackRecommendations...)
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	return recs
}

func authorityRecommendations(authority string) []Recommendation {
	switch strings.ToUpper(authority) {
	case "ISC²", "ISC2":
		return isc2Recommendations
	case "EC-COUNCIL":
		return eccouncilRecommendations
	case "COMPTIA":
		return comptiaRecommendations
	case "OFFENSIVE SECURITY", "OFFSEC":
		return offsecRecommendations
	default:
		return nil
	}
}

var isc2Recommendations = []Recommendation{
	{
		Title:       "ISC² Professional Development Webinars",
		Type:        "Webinar",
		Source:      "ISC²",
		CPEValue:    1.0,
		URL:         "https://www.isc2.org/Professional-Development/CPE",
		Description: "Official ISC² professional development activity",
	},
}

var eccouncilRecommendations = []Recommendation{
	{
		Title:       "EC-Council Cyber Aces Training",
		Type:        "Online Training",
		Source:      "EC-Council",
		CPEValue:    40.0,
		URL:         "https://cyberaces.org",
		Description: "Interactive cybersecurity training modules",
	},
	{
		Title:       "EC-Council Security Events",
		Type:        "Conference",
		Source:      "EC-Council",
		CPEValue:    8.0,
		URL:         "https://www.eccouncil.org/events/",
		Description: "Professional cybersecurity conferences and workshops",
	},
}

var comptiaRecommendations = []Recommendation{
	{
		Title:       "CompTIA Security+ Study Groups",
		Type:        "Study Group",
		Source:      "CompTIA",
		CPEValue:    2.0,
		URL:         "https://www.comptia.org/continuing-education",
		Description: "Community-led study sessions and workshops",
	},
	{
		Title:       "CompTIA IT Fundamentals Webinars",
		Type:        "Webinar",
		Source:      "CompTIA",
		CPEValue:    1.0,
		URL:         "https://www.comptia.org/training/webinars",
		Description: "Regular webinars on emerging IT topics",
	},
}

var offsecRecommendations = []Recommendation{
	{
		Title:       "OffSec Live Training Events",
		Type:        "Training",
		Source:      "Offensive Security",
		CPEValue:    8.0,
		URL:         "https://www.offensive-security.com/courses/",
		Description: "Hands-on penetration testing training",
	},
	{
		Title:       "OSCP Practice Labs",
		Type:        "Self-Study",
		Source:      "Offensive Security",
		CPEValue:    4.0,
		URL:         "https://www.offensive-security.com/labs/",
		Description: "Practical penetration testing exercises",
	},
}

var generalRecommendations = []Recommendation{
	{
		Title:       "SANS Security Training",
		Type:        "Training Course",
		Source:      "SANS",
		CPEValue:    32.0,
		URL:         "https://www.sans.org/cyber-security-courses/",
		Description: "Industry-leading cybersecurity training courses",
	},
	{
		Title:       "NIST Cybersecurity Framework Webinars",
		Type:        "Webinar",
		Source:      "NIST",
		CPEValue:    1.0,
		URL:         "https://www.nist.gov/cyberframework",
		Description: "Government cybersecurity framework training",
	},
	{
		Title:       "ISACA Cybersecurity Nexus",
		Type:        "Conference",
		Source:      "ISACA",
		CPEValue:    8.0,
		URL:         "https://www.isaca.org/training-and-events",
		Description: "Professional governance and risk management",
	},
	{
		Title:       "DEF CON Security Conference",
		Type:        "Conference",
		Source:      "DEF CON",
		CPEValue:    16.0,
		URL:         "https://defcon.org",
		Description: "Premier hacker convention with cutting-edge security research",
	},
}

var fallbackRecommendations = []Recommendation{
	{
		Title:       "Cybersecurity Professional Development",
		Type:        "Self-Study",
		Source:      "General",
		CPEValue:    1.0,
		URL:         "https://www.cybersecurityeducation.org",
		Description: "Comprehensive cybersecurity learning resources",
	},
	{
		Title:       "Industry Security Webinars",
		Type:        "Webinar",
		Source:      "General",
		CPEValue:    1.0,
		URL:         "https://www.securityweek.com/events/",
		Description: "Weekly cybersecurity industry updates and training",
	},
}

// HTTPFetcher checks authority portal reachability before recommending
// portal activities. It keeps a short timeout so a slow portal cannot
// stall the request.
type HTTPFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPFetcher creates an HTTP fetcher with the given timeout.
func NewHTTPFetcher(timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

var portalURLs = map[string]string{
	"ISC²":               "https://www.isc2.org/Professional-Development/CPE",
	"EC-COUNCIL":         "https://www.eccouncil.org/events/",
	"COMPTIA":            "https://www.comptia.org/continuing-education",
	"OFFENSIVE SECURITY": "https://www.offensive-security.com/courses/",
}

// Fetch probes the authority's CPE portal and, when reachable, returns a
// live pointer to it. Content scraping is deliberately out of scope; the
// curated lists carry the detail.
func (f *HTTPFetcher) Fetch(ctx context.Context, authority string) ([]Recommendation, error) {
	url, ok := portalURLs[strings.ToUpper(authority)]
	if !ok {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	return []Recommendation{{
		Title:       authority + " CPE Portal: Current Events",
		Type:        "Portal",
		Source:      authority,
		CPEValue:    1.0,
		URL:         url,
		Description: "Live listing of upcoming CPE-eligible events",
	}}, nil
}
