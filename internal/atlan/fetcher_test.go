package atlan

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"healthbot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchOverview_Baseline(t *testing.T) {
	f := NewSimulatedFetcher(testLogger())
	ov, err := f.FetchOverview(context.Background(), "https://demo.atlan.com", domain.Filters{})
	if err != nil {
		t.Fatal(err)
	}

	if ov.Summary.TotalConnections != 3 {
		t.Errorf("expected 3 connections, got %d", ov.Summary.TotalConnections)
	}
	if ov.Summary.TotalAssets != 1992 {
		t.Errorf("expected 1992 assets, got %d", ov.Summary.TotalAssets)
	}
	if ov.Fallback {
		t.Error("baseline overview should not be marked fallback")
	}
	if len(ov.SampleAssets) != 3 {
		t.Errorf("expected 3 sample assets, got %d", len(ov.SampleAssets))
	}
}

func TestFetchOverview_CertificateFilterRaisesVerification(t *testing.T) {
	f := NewSimulatedFetcher(testLogger())
	ov, err := f.FetchOverview(context.Background(), "https://demo.atlan.com",
		domain.Filters{"certificate": {"VERIFIED"}})
	if err != nil {
		t.Fatal(err)
	}
	if ov.Rates.Verification != filteredVerifiedRate {
		t.Errorf("expected verification rate %v, got %v", filteredVerifiedRate, ov.Rates.Verification)
	}
}

func TestFetchOverview_TagFilterNarrowsSamples(t *testing.T) {
	f := NewSimulatedFetcher(testLogger())
	ov, err := f.FetchOverview(context.Background(), "https://demo.atlan.com",
		domain.Filters{"tags": {"PHI"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(ov.SampleAssets) != 1 {
		t.Fatalf("expected 1 PHI sample, got %d", len(ov.SampleAssets))
	}
	if ov.SampleAssets[0].Name != "patient_records" {
		t.Errorf("expected patient_records, got %s", ov.SampleAssets[0].Name)
	}
	if ov.Rates.Tagging != filteredTaggedRate {
		t.Errorf("expected tagging rate %v, got %v", filteredTaggedRate, ov.Rates.Tagging)
	}
}

func TestFetchOverview_CanceledContext(t *testing.T) {
	f := NewSimulatedFetcher(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.FetchOverview(ctx, "https://demo.atlan.com", nil); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestFallbackOverview(t *testing.T) {
	ov := FallbackOverview()
	if !ov.Fallback {
		t.Error("fallback overview must be marked")
	}
	if ov.Summary.TotalAssets != 500 {
		t.Errorf("expected 500 assets, got %d", ov.Summary.TotalAssets)
	}
	if len(ov.Connections) == 0 {
		t.Error("fallback must carry at least one connection")
	}
}

func TestComplianceIndicators(t *testing.T) {
	ci := complianceIndicators(sampleAssets())
	if ci.PIITagged != 1 || ci.PHITagged != 1 || ci.FinancialTagged != 1 {
		t.Errorf("unexpected indicators: %+v", ci)
	}
	// customer_transactions is VERIFIED with PII+Financial tags
	if ci.VerifiedCritical != 1 {
		t.Errorf("expected 1 verified critical asset, got %d", ci.VerifiedCritical)
	}
}

func TestAnalyzeAssetQuality(t *testing.T) {
	m := AnalyzeAssetQuality(sampleAssets())
	// all three samples have description, tags, owner; two are verified:
	// (100+70+100)/300 = 0.9
	approx := func(name string, got, want float64) {
		t.Helper()
		if got < want-0.001 || got > want+0.001 {
			t.Errorf("%s: expected ~%v, got %v", name, want, got)
		}
	}
	approx("completeness", m.Completeness, 0.95) // 0.9+0.1 clamped
	approx("accuracy", m.Accuracy, 0.95)
	approx("consistency", m.Consistency, 0.85)
	approx("timeliness", m.Timeliness, 0.80)
}

func TestAnalyzeAssetQuality_Empty(t *testing.T) {
	m := AnalyzeAssetQuality(nil)
	if m.Completeness != 0 || m.Timeliness != 0 {
		t.Errorf("expected zero metrics for no assets, got %+v", m)
	}
}

func TestComplianceReadiness(t *testing.T) {
	score := ComplianceReadiness(sampleAssets(), []string{"PII", "Financial"})
	if score <= 0 || score > 0.95 {
		t.Errorf("score out of range: %v", score)
	}
	if def := ComplianceReadiness(nil, nil); def != 0.65 {
		t.Errorf("expected 0.65 default, got %v", def)
	}
}
