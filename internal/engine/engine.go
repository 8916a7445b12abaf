package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	emodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/saju_scribe/internal/calendar"
	"github.com/iWorld-y/saju_scribe/internal/config"
	"github.com/iWorld-y/saju_scribe/internal/export"
	"github.com/iWorld-y/saju_scribe/internal/logger"
	"github.com/iWorld-y/saju_scribe/internal/model"
	"github.com/iWorld-y/saju_scribe/internal/prompt"
	"github.com/iWorld-y/saju_scribe/internal/refdb"
	"github.com/iWorld-y/saju_scribe/internal/saju"
	"github.com/iWorld-y/saju_scribe/internal/storage"
	"github.com/iWorld-y/saju_scribe/internal/webhook"
)

// Engine 核心处理引擎：一次提交从四柱解析到报告生成的完整流水线
type Engine struct {
	cfg       *config.Config
	db        *refdb.DB
	chatModel emodel.ChatModel
	notifier  *webhook.Client
	store     *storage.Storage
	renderer  *export.Renderer
	limiter   *rate.Limiter

	mu          sync.Mutex
	lastReports map[string]*model.Report // uid → 最近一次生成的报告，供导出复用
}

// NewEngine 创建引擎实例；store 可为 nil（归档关闭）
func NewEngine(cfg *config.Config, db *refdb.DB, store *storage.Storage) (*Engine, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	if limit <= 0 {
		limit = rate.Limit(1)
	}
	burst := cfg.Concurrency.QPS
	if burst < 1 {
		burst = 1
	}

	return &Engine{
		cfg:         cfg,
		db:          db,
		chatModel:   chatModel,
		notifier:    webhook.NewClient(cfg.Webhook.URL, time.Duration(cfg.Webhook.Timeout)*time.Second),
		store:       store,
		renderer:    export.NewRenderer(cfg.Data.Font),
		limiter:     rate.NewLimiter(limit, burst),
		lastReports: make(map[string]*model.Report),
	}, nil
}

// GenerateReport 执行完整流水线。姓名为空或日期非法时在任何查表、
// 外呼之前直接失败。
func (e *Engine) GenerateReport(ctx context.Context, sub *model.Submission) (*model.Report, error) {
	if strings.TrimSpace(sub.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	pillars, err := calendar.Resolve(sub.Year, sub.Month, sub.Day, sub.Hour, sub.IsLunar)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date: %w", err)
	}

	tables, err := e.db.Tables()
	if err != nil {
		return nil, err
	}

	ilju := pillars.Day
	bridge := saju.ResolveBridge(tables.Bridge, ilju)
	agg := saju.Lookup(tables, ilju, bridge, sub.Year, sub.Month, sub.Day)

	logger.Log.Infof("命式识别完成 [%s]: %s", sub.Name, pillars.String())

	// 用户信息同步给 n8n，尽力而为，不影响主流程
	e.notifier.Notify("save_user", map[string]any{
		"name":     sub.Name,
		"telegram": sub.Telegram,
		"ilju":     ilju,
		"saju":     pillars.String(),
		"uid":      sub.UID(),
	})

	text, err := e.generate(ctx, prompt.Assemble(sub, pillars, &agg, bridge))
	if err != nil {
		return nil, err
	}

	rep := &model.Report{
		UID:     sub.UID(),
		Name:    sub.Name,
		Ilju:    ilju,
		Pillars: *pillars,
		Text:    text,
	}

	e.mu.Lock()
	e.lastReports[rep.UID] = rep
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.SaveReport(rep); err != nil {
			logger.Log.Errorf("报告归档失败: %v", err)
		}
	}

	return rep, nil
}

// generate 调用模型，限流 + 429 指数退避重试
func (e *Engine) generate(ctx context.Context, promptText string) (string, error) {
	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: "당신은 데이터 명리학의 거장입니다."},
			{Role: schema.User, Content: promptText},
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return "", err
		}

		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}

// ExportReport 导出某 uid 最近一次生成的报告；从未生成过则报错
func (e *Engine) ExportReport(uid string) ([]byte, string, error) {
	e.mu.Lock()
	rep, ok := e.lastReports[uid]
	e.mu.Unlock()
	if !ok {
		return nil, "", fmt.Errorf("no generated report for %s", uid)
	}

	data, err := e.renderer.Render(rep.Text, rep.Name)
	if err != nil {
		return nil, "", fmt.Errorf("export failed: %w", err)
	}
	return data, fmt.Sprintf("%s_saju_report.zip", rep.Name), nil
}

// Subscribe 订阅校验通过后通知 n8n；telegram 为空或裸 "@" 视为无效，
// 校验失败时不发出任何外呼
func (e *Engine) Subscribe(sub *model.Submission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("name is required")
	}
	tg := strings.TrimSpace(sub.Telegram)
	if tg == "" || tg == "@" {
		return fmt.Errorf("telegram id is required")
	}

	e.notifier.Notify("subscribe", map[string]any{
		"name":       sub.Name,
		"telegram":   tg,
		"uid":        sub.UID(),
		"subscribed": true,
	})
	return nil
}

// History 归档列表；归档未启用时返回空
func (e *Engine) History(limit int) ([]storage.ArchivedReport, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.ListReports(limit)
}
