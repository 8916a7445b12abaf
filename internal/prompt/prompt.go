package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iWorld-y/saju_scribe/internal/model"
	"github.com/iWorld-y/saju_scribe/internal/saju"
)

// reportTemplate 最终报告的生成指令。四章结构与行内标记约定都固定在模板里。
const reportTemplate = `당신은 데이터 명리학의 거장입니다. '%s' 님을 위해 깊이 있는 분석 보고서를 작성하세요.

[제공된 데이터]
- 성함: %s(한자: %s)
- 사주 원국: %s
- 일주 핵심: %s
- 십신 정보(%s): %s
- 십이운성 정보(%s): %s
- 격국: %s
- 올해의 운세 데이터: %s
- 체질 문진 답변: %s

[보고서 구성 지침]
1. **제1장 성명학(姓名學)**: 성함과 %s일주의 조화 분석.
2. **제2장 사주(四柱) 정밀 해독 및 종합 분석**:
   - 각 기둥의 의미(%s, %s, %s, %s)를 풀이하세요.
   - [재물운], [부모/형제운], [직업운], [배우자운], [건강운] 5대 영역을 JSON DB 지식을 기반으로 아주 상세하고 풍성하게 종합 분석하세요. (가장 긴 분량 필요)
3. **제3장 올해의 운세**: 제공된 데이터를 기반으로 드라마틱하게 서술하세요.
4. **제4장 체질 판정과 건강 처방**: 32개 답변으로 8체질/아유르베다를 확정 판정하고 처방하세요.

[표현 규칙]
- 모든 한자는 반드시 ` + "`:orange[**한자**]`" + ` 형식을 사용하세요. 예: 무술(:orange[**戊戌**]), 재물운(:orange[**財物運**])
- 전문적이고 담백한 문체를 유지하며 분량을 풍성하게 작성하세요.`

// Assemble 纯字符串模板拼装，不做额外校验，永不失败
func Assemble(sub *model.Submission, pillars *model.PillarSet, agg *saju.Aggregate, bridge model.BridgeKeys) string {
	return fmt.Sprintf(reportTemplate,
		sub.Name,
		sub.Name, sub.HanjaName,
		pillars.String(),
		compactJSON(agg.Ilju),
		bridge.Sipsin, compactJSON(agg.Sipsin),
		bridge.Unseong, compactJSON(agg.Unseong),
		agg.Gyeok.Describe(),
		agg.Tojeong,
		strings.Join(sub.Answers, " / "),
		pillars.Day,
		pillars.Year, pillars.Month, pillars.Day, pillars.Hour,
	)
}

// compactJSON 把查表结果压成单行 JSON 嵌入提示词
func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "{}"
	}
	return string(b)
}
