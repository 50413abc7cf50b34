package domain

import (
	"context"
	"time"
)

// Connection is a metadata source registered in the tenant.
type Connection struct {
	Name          string
	QualifiedName string
	Connector     string
	Status        string
	AssetCount    int
}

// Asset is a single catalogued data asset with its governance attributes.
type Asset struct {
	Name          string
	QualifiedName string
	Certificate   string // VERIFIED | DRAFT | DEPRECATED | ""
	Tags          []string
	Owners        []string
	Description   string
	Popularity    float64
	ReadCount     int
	Connector     string
}

// TenantSummary holds the asset counts the assessment is scored from.
type TenantSummary struct {
	TotalConnections int
	TotalAssets      int
	VerifiedAssets   int
	TaggedAssets     int
	DocumentedAssets int
	OwnedAssets      int
	PopularAssets    int
	RecentUsage      int
	LineageMapped    int
}

// GovernanceRates are the per-dimension coverage ratios (0..1).
type GovernanceRates struct {
	Verification  float64
	Tagging       float64
	Documentation float64
	Ownership     float64
	Lineage       float64
	Usage         float64
}

// ComplianceIndicators count assets carrying sensitive-data classifications.
type ComplianceIndicators struct {
	PIITagged        int
	PHITagged        int
	FinancialTagged  int
	VerifiedCritical int
}

// TenantOverview is the metrics record the renderer consumes. Fallback is
// set when the fetch failed and fixed substitute data was used instead.
type TenantOverview struct {
	Summary      TenantSummary
	Connections  []Connection
	SampleAssets []Asset
	Rates        GovernanceRates
	Compliance   ComplianceIndicators
	Fallback     bool
	FetchedAt    time.Time
}

// TenantFetcher retrieves governance metrics for a tenant. Implementations
// must not be relied on for success: callers substitute fallback data on error
// so an assessment is always produced.
type TenantFetcher interface {
	FetchOverview(ctx context.Context, tenantURL string, filters Filters) (*TenantOverview, error)
}
