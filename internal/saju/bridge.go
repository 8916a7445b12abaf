package saju

import "github.com/iWorld-y/saju_scribe/internal/model"

// 日柱桥接表：把两字日柱映射到十神/十二运星/格局三个键。
// 目前只登记了三个日柱，是一份待补全的配置数据，
// 所以同时支持用 data/ilju_bridge.json 覆盖或扩充。
var builtinBridge = map[string]model.BridgeKeys{
	"무술": {Sipsin: "비견(比肩)", Unseong: "묘(墓)", Gyeok: "건록격(建祿格)"},
	"경신": {Sipsin: "비견(比肩)", Unseong: "건록(建祿)", Gyeok: "양인격(陽刃格)"},
	"임자": {Sipsin: "겁재(劫財)", Unseong: "제왕(帝旺)", Gyeok: "양인격(陽刃格)"},
}

// 未登记日柱一律落到固定缺省三元组
var defaultBridge = model.BridgeKeys{
	Sipsin:  "비견(比肩)",
	Unseong: "묘(墓)",
	Gyeok:   "건록격(建祿格)",
}

// ResolveBridge 按日柱取桥接键。overrides 来自外部配置表，可为 nil。
// 全函数：任何输入都返回完整三元组，从不失败。
func ResolveBridge(overrides map[string]model.BridgeKeys, ilju string) model.BridgeKeys {
	if keys, ok := overrides[ilju]; ok {
		return keys
	}
	if keys, ok := builtinBridge[ilju]; ok {
		return keys
	}
	return defaultBridge
}
