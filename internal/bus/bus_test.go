package bus

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"healthbot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishSubscribe(t *testing.T) {
	b := New(10, testLogger())
	defer b.Close()

	b.Publish(domain.AssessmentJob{ID: "job-1"})

	select {
	case job := <-b.Subscribe():
		if job.ID != "job-1" {
			t.Errorf("expected job-1, got %s", job.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job")
	}
}

func TestPublish_PreservesOrder(t *testing.T) {
	b := New(10, testLogger())
	defer b.Close()

	b.Publish(domain.AssessmentJob{ID: "a"})
	b.Publish(domain.AssessmentJob{ID: "b"})
	b.Publish(domain.AssessmentJob{ID: "c"})

	for _, want := range []string{"a", "b", "c"} {
		job := <-b.Subscribe()
		if job.ID != want {
			t.Errorf("expected %s, got %s", want, job.ID)
		}
	}
}

func TestPublish_AfterCloseIsNoop(t *testing.T) {
	b := New(10, testLogger())
	b.Close()
	b.Publish(domain.AssessmentJob{ID: "late"}) // must not panic
}

func TestClose_Idempotent(t *testing.T) {
	b := New(10, testLogger())
	b.Close()
	b.Close()
}
