package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fin-advisor-be/internal/constant"
	"fin-advisor-be/internal/entity"
	"fin-advisor-be/internal/testutil"
	"fin-advisor-be/pkg/ingest"
	"fin-advisor-be/pkg/llm"

	"github.com/google/uuid"
)

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, nil
}

func newTestDispatcher(factory *testutil.Factory, model *stubLLM) *Dispatcher {
	log := testutil.NopLogger{}
	pipeline := ingest.NewPipeline(model, factory, nil, nil, log)
	return NewDispatcher(pipeline, factory, model, nil, nil, log)
}

func seedDocument(factory *testutil.Factory, filename, content string) uuid.UUID {
	id := uuid.New()
	factory.Documents = append(factory.Documents, &entity.Document{
		Id:        id,
		Filename:  filename,
		Content:   content,
		Category:  "예금",
		CreatedAt: time.Now(),
	})
	return id
}

func TestDispatchAddDocument(t *testing.T) {
	factory := testutil.NewFactory()
	d := newTestDispatcher(factory, &stubLLM{response: "요약"})

	reply, err := d.Dispatch(context.Background(), Command{
		Name: AddDocument, Filename: "청년도약.pdf", Content: "청년도약계좌 가입 안내",
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "청년도약.pdf") || !strings.Contains(reply, "추가했습니다") {
		t.Errorf("reply = %q, want add confirmation", reply)
	}
	if !strings.Contains(reply, "청년") {
		t.Errorf("reply = %q, want classified category", reply)
	}
	if len(factory.Documents) != 1 {
		t.Errorf("stored %d documents, want 1", len(factory.Documents))
	}
}

func TestDispatchAddDuplicate(t *testing.T) {
	factory := testutil.NewFactory()
	seedDocument(factory, "예금안내.pdf", "기존 내용")
	d := newTestDispatcher(factory, &stubLLM{response: "요약"})

	reply, err := d.Dispatch(context.Background(), Command{
		Name: AddDocument, Filename: "예금안내.pdf", Content: "새 내용",
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "이미 존재합니다") {
		t.Errorf("reply = %q, want duplicate message", reply)
	}
	if len(factory.Documents) != 1 {
		t.Errorf("stored %d documents, want 1", len(factory.Documents))
	}
}

func TestDispatchDeleteDocument(t *testing.T) {
	factory := testutil.NewFactory()
	id := seedDocument(factory, "예금안내.pdf", "정기예금 안내")
	factory.Embeds = append(factory.Embeds, &entity.DocumentEmbedding{
		Id: uuid.New(), DocumentId: id, ChunkIndex: 0, ChunkText: "정기예금 안내",
	})
	d := newTestDispatcher(factory, &stubLLM{})

	reply, err := d.Dispatch(context.Background(), Command{Name: DeleteDocument, Filename: "예금안내.pdf"})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "삭제했습니다") {
		t.Errorf("reply = %q, want delete confirmation", reply)
	}
	if len(factory.Documents) != 0 {
		t.Errorf("%d documents remain, want 0", len(factory.Documents))
	}
	if len(factory.Embeds) != 0 {
		t.Errorf("%d embeddings remain, want 0", len(factory.Embeds))
	}
}

func TestDispatchDeleteMissingDocument(t *testing.T) {
	factory := testutil.NewFactory()
	d := newTestDispatcher(factory, &stubLLM{})

	reply, err := d.Dispatch(context.Background(), Command{Name: DeleteDocument, Filename: "없는파일.pdf"})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "찾을 수 없습니다") {
		t.Errorf("reply = %q, want not-found message", reply)
	}
}

func TestDispatchUpdateOverwritesContentOnly(t *testing.T) {
	factory := testutil.NewFactory()
	id := seedDocument(factory, "예금안내.pdf", "이전 내용")
	factory.Documents[0].Summary = "기존 요약"
	factory.Embeds = append(factory.Embeds, &entity.DocumentEmbedding{
		Id: uuid.New(), DocumentId: id, ChunkText: "이전 내용",
	})
	d := newTestDispatcher(factory, &stubLLM{})

	reply, err := d.Dispatch(context.Background(), Command{
		Name: UpdateDocument, Filename: "예금안내.pdf", Content: "개정된 금리 안내",
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "수정했습니다") {
		t.Errorf("reply = %q, want update confirmation", reply)
	}
	doc := factory.Documents[0]
	if doc.Content != "개정된 금리 안내" {
		t.Errorf("content = %q, want overwritten text", doc.Content)
	}
	if doc.Summary != "기존 요약" {
		t.Errorf("summary = %q, want untouched", doc.Summary)
	}
	if doc.Category != "예금" {
		t.Errorf("category = %q, want untouched", doc.Category)
	}
	if len(factory.Embeds) != 0 {
		t.Errorf("%d stale embeddings remain, want 0", len(factory.Embeds))
	}
}

func TestDispatchGroupingSplitsResponseIntoGroups(t *testing.T) {
	factory := testutil.NewFactory()
	seedDocument(factory, "예금A.pdf", "정기예금 A 안내")
	seedDocument(factory, "적금B.pdf", "정기적금 B 안내")
	model := &stubLLM{response: "예금 계열: 예금A.pdf\n\n적금 계열: 적금B.pdf\n\n\n기타: 없음"}
	d := newTestDispatcher(factory, model)

	reply, err := d.Dispatch(context.Background(), Command{Name: PerformGroupingAndMapping})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if reply != model.response {
		t.Errorf("reply = %q, want raw model response", reply)
	}
	if len(factory.Groups) != 3 {
		t.Fatalf("stored %d groups, want 3", len(factory.Groups))
	}
	for i, g := range factory.Groups {
		wantName := []string{"group_1", "group_2", "group_3"}[i]
		if g.GroupName != wantName {
			t.Errorf("group %d name = %q, want %q", i, g.GroupName, wantName)
		}
		if g.RunId != factory.Groups[0].RunId {
			t.Errorf("group %d run id differs within one run", i)
		}
	}
	if len(model.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(model.prompts))
	}
	if !strings.Contains(model.prompts[0], "예금A.pdf") || !strings.Contains(model.prompts[0], "적금B.pdf") {
		t.Errorf("grouping prompt is missing document filenames")
	}
}

func TestDispatchGroupingDegradesWhenModelRateLimited(t *testing.T) {
	factory := testutil.NewFactory()
	seedDocument(factory, "예금A.pdf", "정기예금 A 안내")
	model := &stubLLM{err: llm.ErrRateLimited}
	d := newTestDispatcher(factory, model)
	d.backoffBase = time.Millisecond

	reply, err := d.Dispatch(context.Background(), Command{Name: PerformGroupingAndMapping})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if reply != constant.GroupingUnavailable {
		t.Errorf("reply = %q, want degraded grouping message", reply)
	}
	if len(factory.Groups) != 0 {
		t.Errorf("stored %d groups, want none after a failed run", len(factory.Groups))
	}
	if len(model.prompts) != groupingRetryCap+1 {
		t.Errorf("model called %d times, want %d", len(model.prompts), groupingRetryCap+1)
	}
}

func TestDispatchGroupingDegradesWithoutRetryOnModelError(t *testing.T) {
	factory := testutil.NewFactory()
	seedDocument(factory, "예금A.pdf", "정기예금 A 안내")
	model := &stubLLM{err: errors.New("upstream unavailable")}
	d := newTestDispatcher(factory, model)

	reply, err := d.Dispatch(context.Background(), Command{Name: PerformGroupingAndMapping})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if reply != constant.GroupingUnavailable {
		t.Errorf("reply = %q, want degraded grouping message", reply)
	}
	if len(model.prompts) != 1 {
		t.Errorf("model called %d times, want 1", len(model.prompts))
	}
}

func TestDispatchGroupingWithNoDocuments(t *testing.T) {
	factory := testutil.NewFactory()
	d := newTestDispatcher(factory, &stubLLM{})

	reply, err := d.Dispatch(context.Background(), Command{Name: PerformGroupingAndMapping})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(reply, "그룹화할 문서가 없습니다") {
		t.Errorf("reply = %q, want empty-store message", reply)
	}
}

func TestDispatchPlainReplyPassesThrough(t *testing.T) {
	d := newTestDispatcher(testutil.NewFactory(), &stubLLM{})

	reply, err := d.Dispatch(context.Background(), Command{Name: PlainReply, Text: "그대로 전달되는 답변"})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if reply != "그대로 전달되는 답변" {
		t.Errorf("reply = %q, want verbatim text", reply)
	}
}
