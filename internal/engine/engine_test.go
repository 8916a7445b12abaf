package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	emodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/saju_scribe/internal/export"
	"github.com/iWorld-y/saju_scribe/internal/model"
	"github.com/iWorld-y/saju_scribe/internal/refdb"
	"github.com/iWorld-y/saju_scribe/internal/webhook"
)

// stubChatModel 固定返回预设文本并记录收到的提示词
type stubChatModel struct {
	calls  int
	prompt string
	reply  string
}

func (s *stubChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...emodel.Option) (*schema.Message, error) {
	s.calls++
	if len(in) > 0 {
		s.prompt = in[len(in)-1].Content
	}
	return &schema.Message{Role: schema.Assistant, Content: s.reply}, nil
}

func (s *stubChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...emodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func (s *stubChatModel) BindTools(tools []*schema.ToolInfo) error { return nil }

// newTestEngine 用临时数据目录和打桩模型搭一个引擎
func newTestEngine(t *testing.T, stub *stubChatModel) *Engine {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"60ganja.json": `{
			"35": {"ilju": "무술(戊戌)", "keyword": "가을 산", "summary": "충직한 일주"}
		}`,
		"sipsin_data.json": `{"비견(比肩)": {"의미": "자립심"}}`,
		"12unsung.json":    `{"묘(墓)": {"의미": "수렴"}}`,
		"gyeok_data.json":  `{"건록격(建祿格)": "자수성가의 격국"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return &Engine{
		db:          refdb.Open(dir),
		chatModel:   stub,
		notifier:    webhook.NewClient("", 0),
		renderer:    export.NewRenderer(""),
		limiter:     rate.NewLimiter(rate.Inf, 1),
		lastReports: make(map[string]*model.Report),
	}
}

func TestGenerateReport(t *testing.T) {
	stub := &stubChatModel{reply: "제1장 :orange[**戊戌**] 분석 본문"}
	e := newTestEngine(t, stub)

	sub := &model.Submission{
		Name: "홍길동", HanjaName: "洪吉童",
		Year: 1976, Month: 4, Day: 16,
		Answers: []string{"1. 질문: 그렇다"},
	}
	rep, err := e.GenerateReport(context.Background(), sub)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if rep.Ilju != "무술" {
		t.Errorf("Ilju = %q, want 무술", rep.Ilju)
	}
	if rep.Text != "제1장 :orange[**戊戌**] 분석 본문" {
		t.Errorf("Text = %q", rep.Text)
	}
	if stub.calls != 1 {
		t.Errorf("model calls = %d, want 1", stub.calls)
	}
	// 提示词里应带上查表结果
	for _, want := range []string{"홍길동", "무술", "가을 산", "자수성가의 격국"} {
		if !strings.Contains(stub.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateReport_EmptyNameFailsBeforeModelCall(t *testing.T) {
	stub := &stubChatModel{reply: "본문"}
	e := newTestEngine(t, stub)

	_, err := e.GenerateReport(context.Background(), &model.Submission{
		Name: "   ", Year: 1976, Month: 4, Day: 16,
	})
	if err == nil {
		t.Fatal("GenerateReport() = nil error for empty name")
	}
	if stub.calls != 0 {
		t.Errorf("model was called %d times, want 0", stub.calls)
	}
}

func TestGenerateReport_InvalidDateFailsBeforeModelCall(t *testing.T) {
	stub := &stubChatModel{reply: "본문"}
	e := newTestEngine(t, stub)

	_, err := e.GenerateReport(context.Background(), &model.Submission{
		Name: "홍길동", Year: 2023, Month: 2, Day: 30,
	})
	if err == nil {
		t.Fatal("GenerateReport() = nil error for invalid date")
	}
	if stub.calls != 0 {
		t.Errorf("model was called %d times, want 0", stub.calls)
	}
}

func TestExportReport(t *testing.T) {
	stub := &stubChatModel{reply: "내보낼 본문"}
	e := newTestEngine(t, stub)

	sub := &model.Submission{Name: "홍길동", Year: 1976, Month: 4, Day: 16}
	rep, err := e.GenerateReport(context.Background(), sub)
	if err != nil {
		t.Fatal(err)
	}

	data, filename, err := e.ExportReport(rep.UID)
	if err != nil {
		t.Fatalf("ExportReport() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("ExportReport() output is not a ZIP")
	}
	if filename != "홍길동_saju_report.zip" {
		t.Errorf("filename = %q", filename)
	}
}

func TestExportReport_UnknownUID(t *testing.T) {
	e := newTestEngine(t, &stubChatModel{})
	if _, _, err := e.ExportReport("없는-uid"); err == nil {
		t.Error("ExportReport() = nil error for unknown uid")
	}
}

func TestSubscribe_Validation(t *testing.T) {
	e := newTestEngine(t, &stubChatModel{})

	cases := []struct {
		name    string
		sub     model.Submission
		wantErr bool
	}{
		{"valid", model.Submission{Name: "홍길동", Telegram: "@hong"}, false},
		{"empty name", model.Submission{Telegram: "@hong"}, true},
		{"empty telegram", model.Submission{Name: "홍길동"}, true},
		{"bare at sign", model.Submission{Name: "홍길동", Telegram: "@"}, true},
		{"whitespace telegram", model.Submission{Name: "홍길동", Telegram: "  "}, true},
	}
	for _, c := range cases {
		err := e.Subscribe(&c.sub)
		if (err != nil) != c.wantErr {
			t.Errorf("%s: Subscribe() error = %v, wantErr %v", c.name, err, c.wantErr)
		}
	}
}

func TestHistory_NoStore(t *testing.T) {
	e := newTestEngine(t, &stubChatModel{})
	reports, err := e.History(10)
	if err != nil {
		t.Errorf("History() error = %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("History() = %v, want empty", reports)
	}
}
