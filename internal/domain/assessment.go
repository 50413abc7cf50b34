package domain

import (
	"context"
	"strings"
	"time"
)

// SectionKind labels the fixed sections of an assessment.
type SectionKind string

const (
	SectionHeader          SectionKind = "header"
	SectionMetrics         SectionKind = "metrics"
	SectionCompliance      SectionKind = "compliance"
	SectionRecommendations SectionKind = "recommendations"
	SectionRoadmap         SectionKind = "roadmap"
	SectionImpact          SectionKind = "impact"
	SectionNextSteps       SectionKind = "next_steps"
)

// Section is one titled block of assessment text.
type Section struct {
	Kind  SectionKind
	Title string
	Body  string
}

// HealthScore is the overall governance score with its category percentages.
// Weights: documentation 30%, ownership 25%, certification 25%, context 20%.
type HealthScore struct {
	Overall       int // 0..100
	Documentation int // percent of assets documented
	Ownership     int // percent of assets with an owner
	Certification int // percent of assets verified
	Context       int // percent of assets tagged
}

// AssessmentDocument is the rendered multi-section assessment. Immutable
// once built.
type AssessmentDocument struct {
	Company     string
	Industry    Industry
	TenantURL   string
	Score       HealthScore
	Sections    []Section
	GeneratedAt time.Time
}

// Text concatenates all sections into the deliverable text.
func (d *AssessmentDocument) Text() string {
	var sb strings.Builder
	for i, sec := range d.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sec.Body)
	}
	return sb.String()
}

// MessageChunk is a bounded-size segment of an assessment. Index is 1-based;
// concatenating chunks in Index order reproduces the document text exactly.
type MessageChunk struct {
	Text  string
	Index int
	Total int
}

// Deliverer posts one chunk to the destination channel.
type Deliverer interface {
	Deliver(ctx context.Context, responseURL string, chunk MessageChunk) error
}
