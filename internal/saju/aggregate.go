package saju

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/saju_scribe/internal/model"
	"github.com/iWorld-y/saju_scribe/internal/refdb"
)

// GyeokFallback 格局表未命中时的字面缺省值（与桥接表的缺省格局是两回事）
const GyeokFallback = "자수성가형 명조"

// Aggregate 一次查询汇总出的全部参考数据
type Aggregate struct {
	Ilju    model.IljuInfo
	Sipsin  map[string]string
	Unseong map[string]string
	Gyeok   model.GyeokEntry
	Tojeong string
}

// TojeongKey 年运表的 3 位合成键。各位取值范围 1-8 / 1-6 / 1-3，
// 公式是刻意简化的确定性散列，不是历法运算，操作数顺序与模数不可改动。
func TojeongKey(year, month, day int) string {
	return fmt.Sprintf("%d%d%d",
		emod(year+month, 8)+1,
		emod(month+day, 6)+1,
		emod(day+year, 3)+1,
	)
}

// emod 欧几里得取模，负数输入也落在 [0, n)
func emod(x, n int) int {
	return ((x % n) + n) % n
}

// Lookup 四类查表彼此独立，缺失条目一律降级为空值而不是错误
func Lookup(tables *refdb.Tables, ilju string, bridge model.BridgeKeys, year, month, day int) Aggregate {
	var agg Aggregate

	// 基础表按插入序做子串匹配，取第一个命中
	for _, k := range tables.IljuKeys() {
		if info := tables.Ilju[k]; strings.Contains(info.Ilju, ilju) {
			agg.Ilju = info
			break
		}
	}

	agg.Sipsin = tables.Sipsin[bridge.Sipsin]
	agg.Unseong = tables.Unseong[bridge.Unseong]

	if entry, ok := tables.Gyeok[bridge.Gyeok]; ok {
		agg.Gyeok = entry
	} else {
		agg.Gyeok = model.GyeokEntry{Text: GyeokFallback}
	}

	agg.Tojeong = tables.Tojeong[TojeongKey(year, month, day)].FullContent

	return agg
}
