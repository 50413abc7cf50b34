package domain

import "time"

// Industry identifies the vertical used to select an assessment profile.
type Industry string

const (
	IndustryFinance       Industry = "finance"
	IndustryHealthcare    Industry = "healthcare"
	IndustryConstruction  Industry = "construction"
	IndustryRetail        Industry = "retail"
	IndustryTechnology    Industry = "technology"
	IndustryManufacturing Industry = "manufacturing"
	IndustryUnspecified   Industry = "unspecified"
)

// KnownIndustries lists every industry with a dedicated profile.
var KnownIndustries = []Industry{
	IndustryFinance,
	IndustryHealthcare,
	IndustryConstruction,
	IndustryRetail,
	IndustryTechnology,
	IndustryManufacturing,
}

// Filters maps recognized filter keys (industry, tags, connections,
// certificate, asset_type) to their comma-separated values.
type Filters map[string][]string

// First returns the first value for key, or "" when absent.
func (f Filters) First(key string) string {
	if vals, ok := f[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Has reports whether key carries at least one value.
func (f Filters) Has(key string) bool {
	vals, ok := f[key]
	return ok && len(vals) > 0
}

// CommandRequest is a parsed slash command. Built once per inbound request
// and never mutated afterwards.
type CommandRequest struct {
	Company     string
	TenantURL   string
	Industry    Industry
	Filters     Filters
	UserName    string
	ChannelName string
	ResponseURL string
	ReceivedAt  time.Time
}

// AssessmentJob is one acknowledged slash command queued for the full
// fetch-render-deliver pipeline.
type AssessmentJob struct {
	ID      string
	Request CommandRequest
	Queued  time.Time
}

// JobBus queues assessment jobs between the webhook handler and the
// pipeline runner. The handler must return its acknowledgment before the
// queued job is processed; the bus decouples the two.
type JobBus interface {
	Publish(job AssessmentJob)
	Subscribe() <-chan AssessmentJob
	Close()
}
