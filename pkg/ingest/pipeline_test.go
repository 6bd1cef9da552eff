package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/testutil"
	"fin-advisor-be/pkg/classifier"
	"fin-advisor-be/pkg/llm"
)

type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "요약", nil
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, "")
}

type capturingPublisher struct {
	payloads [][]byte
}

func (c *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func newTestPipeline(factory *testutil.Factory, model llm.LLMProvider) (*Pipeline, *capturingPublisher) {
	pub := &capturingPublisher{}
	p := NewPipeline(model, factory, pub, nil, testutil.NopLogger{})
	p.backoffBase = time.Millisecond
	return p, pub
}

func TestIngestRejectsBlankInput(t *testing.T) {
	factory := testutil.NewFactory()
	p, _ := newTestPipeline(factory, &scriptedLLM{})

	cases := []struct {
		filename string
		content  string
	}{
		{"", "실제 내용"},
		{"상품.pdf", ""},
		{"상품.pdf", "   \n\t  "},
	}
	for _, tc := range cases {
		res, err := p.Ingest(context.Background(), tc.filename, tc.content)
		if err != nil {
			t.Fatalf("Ingest(%q, %q) error: %v", tc.filename, tc.content, err)
		}
		if res.Outcome != OutcomeRejected {
			t.Errorf("Ingest(%q, %q) outcome = %s, want rejected", tc.filename, tc.content, res.Outcome)
		}
	}
	if len(factory.Documents) != 0 {
		t.Errorf("rejected ingestion stored %d documents", len(factory.Documents))
	}
}

func TestIngestCreatesClassifiedDocument(t *testing.T) {
	factory := testutil.NewFactory()
	model := &scriptedLLM{responses: []string{"  청년 전용 적금 상품 요약  "}}
	p, pub := newTestPipeline(factory, model)

	res, err := p.Ingest(context.Background(), "청년적금.pdf", "청년 우대 적금, 월 50만원 한도")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("outcome = %s, want created", res.Outcome)
	}
	if res.Category != classifier.CategoryYouth {
		t.Errorf("category = %s, want %s", res.Category, classifier.CategoryYouth)
	}
	if res.Document.Summary != "청년 전용 적금 상품 요약" {
		t.Errorf("summary = %q, want trimmed model output", res.Document.Summary)
	}
	if len(factory.Documents) != 1 {
		t.Fatalf("stored %d documents, want 1", len(factory.Documents))
	}
	if len(pub.payloads) != 1 {
		t.Errorf("queued %d embedding jobs, want 1", len(pub.payloads))
	}
}

func TestIngestSkipsDuplicateFilename(t *testing.T) {
	factory := testutil.NewFactory()
	p, pub := newTestPipeline(factory, &scriptedLLM{})

	first, err := p.Ingest(context.Background(), "국채안내.pdf", "만기 3년 국채 안내문")
	if err != nil {
		t.Fatalf("first Ingest error: %v", err)
	}
	second, err := p.Ingest(context.Background(), "국채안내.pdf", "전혀 다른 내용")
	if err != nil {
		t.Fatalf("second Ingest error: %v", err)
	}

	if second.Outcome != OutcomeDuplicate {
		t.Fatalf("second outcome = %s, want duplicate", second.Outcome)
	}
	if second.Document.Id != first.Document.Id {
		t.Errorf("duplicate result should carry the existing document")
	}
	if len(factory.Documents) != 1 {
		t.Errorf("stored %d documents, want 1", len(factory.Documents))
	}
	if len(pub.payloads) != 1 {
		t.Errorf("queued %d embedding jobs, want 1", len(pub.payloads))
	}
}

func TestSummarizeRetriesOnRateLimitThenSucceeds(t *testing.T) {
	factory := testutil.NewFactory()
	model := &scriptedLLM{
		errs:      []error{llm.ErrRateLimited, llm.ErrRateLimited, nil},
		responses: []string{"", "", "세 번째 시도 요약"},
	}
	p, _ := newTestPipeline(factory, model)

	res, err := p.Ingest(context.Background(), "예금상품.pdf", "정기예금 금리 안내")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if res.Document.Summary != "세 번째 시도 요약" {
		t.Errorf("summary = %q, want retried result", res.Document.Summary)
	}
	if model.calls != 3 {
		t.Errorf("model called %d times, want 3", model.calls)
	}
}

func TestSummarizeDegradesAfterRetryCeiling(t *testing.T) {
	factory := testutil.NewFactory()
	model := &scriptedLLM{
		errs: []error{llm.ErrRateLimited, llm.ErrRateLimited, llm.ErrRateLimited, llm.ErrRateLimited},
	}
	p, _ := newTestPipeline(factory, model)

	res, err := p.Ingest(context.Background(), "예금상품.pdf", "정기예금 금리 안내")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if res.Outcome != OutcomeCreated {
		t.Fatalf("outcome = %s, want created despite summary failure", res.Outcome)
	}
	if res.Document.Summary != constant.SummaryUnavailable {
		t.Errorf("summary = %q, want placeholder", res.Document.Summary)
	}
	if model.calls != 4 {
		t.Errorf("model called %d times, want initial try plus 3 retries", model.calls)
	}
}

func TestSummarizeDoesNotRetryOtherErrors(t *testing.T) {
	factory := testutil.NewFactory()
	model := &scriptedLLM{errs: []error{errors.New("connection refused")}}
	p, _ := newTestPipeline(factory, model)

	res, err := p.Ingest(context.Background(), "예금상품.pdf", "정기예금 금리 안내")
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if res.Document.Summary != constant.SummaryUnavailable {
		t.Errorf("summary = %q, want placeholder", res.Document.Summary)
	}
	if model.calls != 1 {
		t.Errorf("model called %d times, want 1", model.calls)
	}
}
