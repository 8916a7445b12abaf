package service

import (
	"context"

	"github.com/iWorld-y/saju_scribe/internal/engine"
	"github.com/iWorld-y/saju_scribe/internal/model"
	"github.com/iWorld-y/saju_scribe/internal/prompt"
	"github.com/iWorld-y/saju_scribe/internal/storage"
)

// SajuService HTTP 层与引擎之间的门面
type SajuService struct {
	eng *engine.Engine
}

func NewSajuService(eng *engine.Engine) *SajuService {
	return &SajuService{eng: eng}
}

// GenerateRequest 生成报告请求
type GenerateRequest struct {
	Name      string   `json:"name"`
	HanjaName string   `json:"hanja_name"`
	Telegram  string   `json:"telegram"`
	Calendar  string   `json:"calendar"` // "solar" | "lunar"
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	Day       int      `json:"day"`
	Hour      string   `json:"hour"`
	Answers   []string `json:"answers"` // 按问卷顺序的 32 个选项
}

// GenerateReply 生成报告响应
type GenerateReply struct {
	UID     string          `json:"uid"`
	Pillars model.PillarSet `json:"pillars"`
	Ilju    string          `json:"ilju"`
	Report  string          `json:"report"`
}

func (r *GenerateRequest) submission() *model.Submission {
	return &model.Submission{
		Name:      r.Name,
		HanjaName: r.HanjaName,
		Telegram:  r.Telegram,
		IsLunar:   r.Calendar == "lunar",
		Year:      r.Year,
		Month:     r.Month,
		Day:       r.Day,
		Hour:      r.Hour,
		Answers:   prompt.PairAnswers(r.Answers),
	}
}

// Generate 生成一份报告
func (s *SajuService) Generate(ctx context.Context, req *GenerateRequest) (*GenerateReply, error) {
	rep, err := s.eng.GenerateReport(ctx, req.submission())
	if err != nil {
		return nil, err
	}
	return &GenerateReply{
		UID:     rep.UID,
		Pillars: rep.Pillars,
		Ilju:    rep.Ilju,
		Report:  rep.Text,
	}, nil
}

// ExportRequest 导出请求，uid 来自 GenerateReply
type ExportRequest struct {
	UID string `json:"uid"`
}

// Export 导出最近一次生成的报告，返回文档字节与下载文件名
func (s *SajuService) Export(_ context.Context, req *ExportRequest) ([]byte, string, error) {
	return s.eng.ExportReport(req.UID)
}

// SubscribeRequest 订阅请求；生日字段用于派生 uid
type SubscribeRequest struct {
	Name     string `json:"name"`
	Telegram string `json:"telegram"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Hour     string `json:"hour"`
}

// Subscribe 提交订阅请求
func (s *SajuService) Subscribe(_ context.Context, req *SubscribeRequest) error {
	return s.eng.Subscribe(&model.Submission{
		Name:     req.Name,
		Telegram: req.Telegram,
		Year:     req.Year,
		Month:    req.Month,
		Day:      req.Day,
		Hour:     req.Hour,
	})
}

// History 归档报告摘要列表
func (s *SajuService) History(_ context.Context, limit int) ([]storage.ArchivedReport, error) {
	return s.eng.History(limit)
}
