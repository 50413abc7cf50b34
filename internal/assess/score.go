package assess

import "healthbot/internal/domain"

// Category weights for the overall score. Documentation carries the most
// weight, then ownership and certification, then context (tagging).
const (
	weightDocumentation = 0.30
	weightOwnership     = 0.25
	weightCertification = 0.25
	weightContext       = 0.20
)

// Score computes the governance health score from a tenant overview.
// Category values are whole percentages of total assets; the overall score
// is their weighted blend.
func Score(ov *domain.TenantOverview) domain.HealthScore {
	s := ov.Summary
	doc := percent(s.DocumentedAssets, s.TotalAssets)
	own := percent(s.OwnedAssets, s.TotalAssets)
	cert := percent(s.VerifiedAssets, s.TotalAssets)
	ctx := percent(s.TaggedAssets, s.TotalAssets)

	overall := float64(doc)*weightDocumentation +
		float64(own)*weightOwnership +
		float64(cert)*weightCertification +
		float64(ctx)*weightContext

	return domain.HealthScore{
		Overall:       int(overall + 0.5),
		Documentation: doc,
		Ownership:     own,
		Certification: cert,
		Context:       ctx,
	}
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
