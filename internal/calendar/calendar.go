package calendar

import (
	"fmt"
	"time"

	lc "github.com/6tail/lunar-go/calendar"

	"github.com/iWorld-y/saju_scribe/internal/model"
)

// 天干 → 韩文读音
var ganHangul = map[rune]rune{
	'甲': '갑', '乙': '을', '丙': '병', '丁': '정', '戊': '무',
	'己': '기', '庚': '경', '辛': '신', '壬': '임', '癸': '계',
}

// 地支 → 韩文读音
var zhiHangul = map[rune]rune{
	'子': '자', '丑': '축', '寅': '인', '卯': '묘', '辰': '진', '巳': '사',
	'午': '오', '未': '미', '申': '신', '酉': '유', '戌': '술', '亥': '해',
}

// Hangulize 把干支两字转写为韩文两字（"戊戌" → "무술"）
func Hangulize(ganzhi string) (string, error) {
	r := []rune(ganzhi)
	if len(r) != 2 {
		return "", fmt.Errorf("unexpected ganzhi %q", ganzhi)
	}
	g, ok := ganHangul[r[0]]
	if !ok {
		return "", fmt.Errorf("unknown heavenly stem %q", string(r[0]))
	}
	z, ok := zhiHangul[r[1]]
	if !ok {
		return "", fmt.Errorf("unknown earthly branch %q", string(r[1]))
	}
	return string([]rune{g, z}), nil
}

// Resolve 求四柱。isLunar 为真时按农历解释输入（固定按非闰月处理）。
// 日期非法时返回错误，调用方必须中止后续流水线。纯计算，无副作用。
func Resolve(year, month, day int, hourLabel string, isLunar bool) (ps *model.PillarSet, err error) {
	// lunar-go 对非法日期会 panic，统一转为错误返回
	defer func() {
		if r := recover(); r != nil {
			ps = nil
			err = fmt.Errorf("calendar conversion failed: %v", r)
		}
	}()

	var lunar *lc.Lunar
	if isLunar {
		lunar = lc.NewLunarFromYmd(year, month, day)
	} else {
		if !validSolarDate(year, month, day) {
			return nil, fmt.Errorf("invalid solar date %04d-%02d-%02d", year, month, day)
		}
		lunar = lc.NewSolarFromYmd(year, month, day).GetLunar()
	}

	yearGZ, err := Hangulize(lunar.GetYearInGanZhi())
	if err != nil {
		return nil, err
	}
	monthGZ, err := Hangulize(lunar.GetMonthInGanZhi())
	if err != nil {
		return nil, err
	}
	dayGZ, err := Hangulize(lunar.GetDayInGanZhi())
	if err != nil {
		return nil, err
	}

	if hourLabel == "" {
		hourLabel = model.HourUnknown
	}

	return &model.PillarSet{
		Year:  yearGZ,
		Month: monthGZ,
		Day:   dayGZ,
		Hour:  hourLabel,
	}, nil
}

// validSolarDate 用 time.Date 回环校验公历日期，2 月 30 日之类直接拒绝
func validSolarDate(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}
