// Package command parses the free-text portion of the slash command:
//
//	<company-name> <tenant-url> [filter:value ...]
//
// The company name may be double-quoted to contain spaces. Parsing never
// fails: malformed input degrades to defaults instead of surfacing errors.
package command

import (
	"regexp"
	"strings"
	"time"

	"healthbot/internal/domain"
)

// DefaultCompany is substituted when no company name can be extracted.
const DefaultCompany = "Unknown Company"

// recognized filter keys; anything else of the form key:value is ignored.
var filterKeys = map[string]bool{
	"industry":    true,
	"tags":        true,
	"connections": true,
	"certificate": true,
	"asset_type":  true,
}

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// Parse extracts a CommandRequest from the raw command text. The first
// token (or quoted run) is the company name, the first URL-shaped token is
// the tenant URL, and remaining key:value tokens populate the filter map.
func Parse(text string) domain.CommandRequest {
	req := domain.CommandRequest{
		Company:    DefaultCompany,
		Filters:    domain.Filters{},
		ReceivedAt: time.Now(),
	}

	// The company name is the leading run of plain tokens, so unquoted
	// multi-word names work: "DPR Construction https://..." parses the
	// same as `"DPR Construction" https://...`.
	var company []string
	nameDone := false
	for _, tok := range tokenize(text) {
		switch {
		case req.TenantURL == "" && urlPattern.MatchString(tok):
			req.TenantURL = tok
			nameDone = true
		case isFilter(tok):
			key, vals := splitFilter(tok)
			req.Filters[key] = vals
			nameDone = true
		case !nameDone:
			company = append(company, tok)
		default:
			// unrecognized trailing token, ignore
		}
	}
	if len(company) > 0 {
		req.Company = strings.Join(company, " ")
	}

	req.Industry = DetectIndustry(req.Company, req.Filters)
	return req
}

// tokenize splits text on whitespace while keeping double-quoted runs
// together. Quotes themselves are stripped; an unterminated quote consumes
// the rest of the input.
func tokenize(text string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '"' || r == '“' || r == '”': // Slack smart quotes
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// isFilter reports whether tok is key:value with a recognized key. URL-shaped
// tokens (scheme:...) never match because their key contains slashes.
func isFilter(tok string) bool {
	idx := strings.Index(tok, ":")
	if idx <= 0 || idx == len(tok)-1 {
		return false
	}
	return filterKeys[strings.ToLower(tok[:idx])]
}

func splitFilter(tok string) (string, []string) {
	idx := strings.Index(tok, ":")
	key := strings.ToLower(tok[:idx])
	var vals []string
	for _, v := range strings.Split(tok[idx+1:], ",") {
		if v = strings.TrimSpace(v); v != "" {
			vals = append(vals, v)
		}
	}
	return key, vals
}

// industryKeywords maps company-name fragments to industries, used when no
// explicit industry filter is given. Checked in order; the first match wins.
var industryKeywords = []struct {
	keyword  string
	industry domain.Industry
}{
	{"bank", domain.IndustryFinance},
	{"capital", domain.IndustryFinance},
	{"financial", domain.IndustryFinance},
	{"insurance", domain.IndustryFinance},
	{"hospital", domain.IndustryHealthcare},
	{"health", domain.IndustryHealthcare},
	{"medical", domain.IndustryHealthcare},
	{"clinic", domain.IndustryHealthcare},
	{"construction", domain.IndustryConstruction},
	{"builders", domain.IndustryConstruction},
	{"engineering", domain.IndustryConstruction},
	{"retail", domain.IndustryRetail},
	{"stores", domain.IndustryRetail},
	{"commerce", domain.IndustryRetail},
	{"manufacturing", domain.IndustryManufacturing},
	{"industries", domain.IndustryManufacturing},
	{"factory", domain.IndustryManufacturing},
	{"tech", domain.IndustryTechnology},
	{"software", domain.IndustryTechnology},
	{"digital", domain.IndustryTechnology},
}

// DetectIndustry resolves the industry for a request: an explicit
// industry filter wins, then a keyword match on the company name, then
// the unspecified default.
func DetectIndustry(company string, filters domain.Filters) domain.Industry {
	if v := filters.First("industry"); v != "" {
		candidate := domain.Industry(strings.ToLower(v))
		for _, known := range domain.KnownIndustries {
			if candidate == known {
				return known
			}
		}
		return domain.IndustryUnspecified
	}

	lower := strings.ToLower(company)
	for _, entry := range industryKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.industry
		}
	}
	return domain.IndustryUnspecified
}
