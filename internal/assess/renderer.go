// Package assess renders the multi-section governance health assessment.
package assess

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"healthbot/internal/atlan"
	"healthbot/internal/domain"
)

// Renderer fills the fixed assessment template from a request and a tenant
// overview. Rendering never fails: missing fields get defaults and an
// unknown industry gets the general profile.
type Renderer struct {
	profiles *ProfileSet
	logger   *slog.Logger
	now      func() time.Time
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Render builds the assessment document. The section order is fixed:
// header, current state, compliance, recommendations, roadmap, impact,
// next steps.
func (r *Renderer) Render(req domain.CommandRequest, ov *domain.TenantOverview) *domain.AssessmentDocument {
	profile := r.profiles.For(req.Industry)
	score := Score(ov)
	generated := r.now()

	tenant := req.TenantURL
	if tenant == "" {
		tenant = "tenant not provided"
	}

	doc := &domain.AssessmentDocument{
		Company:     req.Company,
		Industry:    req.Industry,
		TenantURL:   req.TenantURL,
		Score:       score,
		GeneratedAt: generated,
	}
	doc.Sections = []domain.Section{
		r.header(req.Company, tenant, profile, score, generated, ov.Fallback),
		r.currentState(ov, score),
		r.compliance(ov, profile),
		r.recommendations(profile),
		r.roadmap(),
		r.impact(),
		r.nextSteps(),
	}

	r.logger.Debug("assessment rendered",
		"company", req.Company,
		"industry", req.Industry,
		"score", score.Overall,
		"sections", len(doc.Sections),
	)
	return doc
}

func (r *Renderer) header(company, tenant string, p Profile, score domain.HealthScore, generated time.Time, fallback bool) domain.Section {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — Data Governance Health Assessment\n", p.Icon, company)
	fmt.Fprintf(&b, "Industry: %s\n", p.Label)
	fmt.Fprintf(&b, "Tenant: %s\n", tenant)
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format("2006-01-02"))
	fmt.Fprintf(&b, "\n🎯 Governance Health Score: %d/100\n", score.Overall)
	if fallback {
		b.WriteString("⚠️ Live tenant data was unavailable; figures below are baseline estimates.\n")
	}
	return domain.Section{Kind: domain.SectionHeader, Title: "Header", Body: b.String()}
}

func (r *Renderer) currentState(ov *domain.TenantOverview, score domain.HealthScore) domain.Section {
	s := ov.Summary
	var b strings.Builder
	b.WriteString("\n📈 Current State\n")
	fmt.Fprintf(&b, "• Connections: %d active\n", s.TotalConnections)
	for _, c := range ov.Connections {
		fmt.Fprintf(&b, "   - %s (%s): %d assets\n", c.Name, c.Connector, c.AssetCount)
	}
	fmt.Fprintf(&b, "• Total assets: %d\n", s.TotalAssets)
	fmt.Fprintf(&b, "• Documented: %d (%d%%)\n", s.DocumentedAssets, score.Documentation)
	fmt.Fprintf(&b, "• Owned: %d (%d%%)\n", s.OwnedAssets, score.Ownership)
	fmt.Fprintf(&b, "• Certified: %d (%d%%)\n", s.VerifiedAssets, score.Certification)
	fmt.Fprintf(&b, "• Tagged: %d (%d%%)\n", s.TaggedAssets, score.Context)
	fmt.Fprintf(&b, "• Lineage mapped: %d (%.0f%%)\n", s.LineageMapped, ov.Rates.Lineage*100)
	fmt.Fprintf(&b, "• Recently used: %d (%.0f%%)\n", s.RecentUsage, ov.Rates.Usage*100)
	return domain.Section{Kind: domain.SectionMetrics, Title: "Current State", Body: b.String()}
}

func (r *Renderer) compliance(ov *domain.TenantOverview, p Profile) domain.Section {
	var b strings.Builder
	b.WriteString("\n🛡️ Compliance Indicators\n")
	fmt.Fprintf(&b, "• PII tagged assets: %d\n", ov.Compliance.PIITagged)
	fmt.Fprintf(&b, "• PHI tagged assets: %d\n", ov.Compliance.PHITagged)
	fmt.Fprintf(&b, "• Financial tagged assets: %d\n", ov.Compliance.FinancialTagged)
	fmt.Fprintf(&b, "• Verified critical assets: %d\n", ov.Compliance.VerifiedCritical)
	fmt.Fprintf(&b, "• Priority classifications for %s: %s\n", p.Label, strings.Join(p.RequiredTags, ", "))
	readiness := atlan.ComplianceReadiness(ov.SampleAssets, p.RequiredTags)
	fmt.Fprintf(&b, "• Compliance readiness: %.0f%%\n", readiness*100)
	if len(ov.SampleAssets) > 0 {
		q := atlan.AnalyzeAssetQuality(ov.SampleAssets)
		fmt.Fprintf(&b, "• Sample quality: completeness %.0f%%, accuracy %.0f%%, consistency %.0f%%, timeliness %.0f%%\n",
			q.Completeness*100, q.Accuracy*100, q.Consistency*100, q.Timeliness*100)
	}
	return domain.Section{Kind: domain.SectionCompliance, Title: "Compliance Indicators", Body: b.String()}
}

func (r *Renderer) recommendations(p Profile) domain.Section {
	var b strings.Builder
	b.WriteString("\n💡 Strategic Recommendations\n")
	for i, rec := range p.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return domain.Section{Kind: domain.SectionRecommendations, Title: "Strategic Recommendations", Body: b.String()}
}

func (r *Renderer) roadmap() domain.Section {
	body := `
🗺️ Governance Roadmap
• Phase 1 (first 30 days): certify top-used assets, assign owners to critical datasets, agree on a tagging taxonomy.
• Phase 2 (days 31-60): roll out documentation standards, tag sensitive data end to end, map lineage for core pipelines.
• Phase 3 (days 61-90): automate certification workflows, wire governance metrics into review cadences, expand coverage to long-tail sources.
`
	return domain.Section{Kind: domain.SectionRoadmap, Title: "Governance Roadmap", Body: body}
}

func (r *Renderer) impact() domain.Section {
	body := `
📊 Expected Impact
• Faster discovery: analysts find certified data instead of re-deriving it.
• Lower compliance risk: sensitive data is classified before auditors ask.
• Reduced duplication: documented, owned assets stop parallel rebuilds.
`
	return domain.Section{Kind: domain.SectionImpact, Title: "Expected Impact", Body: body}
}

func (r *Renderer) nextSteps() domain.Section {
	body := `
✅ Next Steps
1. Review this assessment with your data governance lead.
2. Pick the Phase 1 asset list and assign owners this week.
3. Re-run the health check after 30 days to track movement.
`
	return domain.Section{Kind: domain.SectionNextSteps, Title: "Next Steps", Body: body}
}
