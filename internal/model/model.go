package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// HourUnknown 出生时辰未知时的哨兵值（韩语 "모름"）
const HourUnknown = "모름"

// PillarSet 四柱：年/月/日柱为干支两字（韩文），时柱为自由文本时间标签
type PillarSet struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// String 按 "년 월 일 시" 顺序拼出完整命式文本
func (p *PillarSet) String() string {
	return fmt.Sprintf("%s년 %s월 %s일 %s시", p.Year, p.Month, p.Day, p.Hour)
}

// BridgeKeys 日柱桥接键：十神 / 十二运星 / 格局
type BridgeKeys struct {
	Sipsin  string `json:"sipsin"`
	Unseong string `json:"unseong"`
	Gyeok   string `json:"gyeok"`
}

// Submission 用户一次提交的全部输入，构造后不再修改
type Submission struct {
	Name      string
	HanjaName string
	Telegram  string
	IsLunar   bool
	Year      int
	Month     int
	Day       int
	Hour      string
	Answers   []string // 32 条 "问题: 回答" 文本，按问卷固定顺序
}

// UID 派生唯一标识：姓名 + 数字生日 + 规范化时辰
func (s *Submission) UID() string {
	hour := strings.TrimSpace(s.Hour)
	if hour == "" || hour == HourUnknown {
		hour = "unknown"
	}
	hour = strings.ReplaceAll(hour, ":", "")
	return fmt.Sprintf("%s-%04d%02d%02d-%s", s.Name, s.Year, s.Month, s.Day, hour)
}

// IljuInfo 60 갑자基础表条目；ilju 字段形如 "무술(戊戌)"，用于子串匹配
type IljuInfo struct {
	Ilju    string `json:"ilju"`
	Keyword string `json:"keyword"`
	Summary string `json:"summary"`
}

// TojeongEntry 年运表（144 条）条目
type TojeongEntry struct {
	FullContent string `json:"full_content"`
	Weight      int    `json:"weight"`
}

// GyeokEntry 格局表条目。源数据是异构的：要么是裸字符串，
// 要么是结构化记录，两种形状都必须能解析。
type GyeokEntry struct {
	Text   string
	Record map[string]string
}

// UnmarshalJSON 按首字符区分字符串与对象两种形状
func (e *GyeokEntry) UnmarshalJSON(data []byte) error {
	t := bytes.TrimSpace(data)
	if len(t) > 0 && t[0] == '"' {
		return json.Unmarshal(data, &e.Text)
	}
	return json.Unmarshal(data, &e.Record)
}

// MarshalJSON 保持原始形状回写
func (e GyeokEntry) MarshalJSON() ([]byte, error) {
	if e.Record != nil {
		return json.Marshal(e.Record)
	}
	return json.Marshal(e.Text)
}

// IsZero 两种形状都为空
func (e GyeokEntry) IsZero() bool {
	return e.Text == "" && len(e.Record) == 0
}

// Describe 把条目展开成单行文本，供提示词嵌入
func (e GyeokEntry) Describe() string {
	if e.Record != nil {
		keys := make([]string, 0, len(e.Record))
		for k := range e.Record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, e.Record[k]))
		}
		return strings.Join(parts, " / ")
	}
	return e.Text
}

// Report 一次生成的报告，按 UID 保存在会话内供导出复用
type Report struct {
	UID     string    `json:"uid"`
	Name    string    `json:"name"`
	Ilju    string    `json:"ilju"`
	Pillars PillarSet `json:"pillars"`
	Text    string    `json:"text"`
}
