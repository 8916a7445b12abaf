package refdb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/iWorld-y/saju_scribe/internal/model"
)

// 数据文件名固定，相对配置的 data 目录
const (
	fileIlju    = "60ganja.json"
	fileTojeong = "tojeong_144_weighted.json"
	fileSipsin  = "sipsin_data.json"
	fileGyeok   = "gyeok_data.json"
	fileUnseong = "12unsung.json"
	fileBridge  = "ilju_bridge.json"
)

// Tables 五张参考表加可选的桥接覆盖表，进程生命周期内只读
type Tables struct {
	Ilju    map[string]model.IljuInfo
	Tojeong map[string]model.TojeongEntry
	Sipsin  map[string]map[string]string
	Gyeok   map[string]model.GyeokEntry
	Unseong map[string]map[string]string
	Bridge  map[string]model.BridgeKeys

	iljuKeys []string
}

// IljuKeys 基础表的稳定迭代序（升序索引键，即源表的插入序）
func (t *Tables) IljuKeys() []string { return t.iljuKeys }

// DB 惰性加载并缓存参考表
type DB struct {
	dir    string
	once   sync.Once
	tables *Tables
	err    error
}

// Open 不读盘，首次 Tables 调用才加载
func Open(dir string) *DB { return &DB{dir: dir} }

// Tables 首次调用读盘，之后永远返回同一缓存实例。
// 文件缺失降级为空表；文件损坏是错误，调用方应视为启动失败。
func (d *DB) Tables() (*Tables, error) {
	d.once.Do(func() {
		d.tables, d.err = loadAll(d.dir)
	})
	return d.tables, d.err
}

func loadAll(dir string) (*Tables, error) {
	t := &Tables{
		Ilju:    make(map[string]model.IljuInfo),
		Tojeong: make(map[string]model.TojeongEntry),
		Sipsin:  make(map[string]map[string]string),
		Gyeok:   make(map[string]model.GyeokEntry),
		Unseong: make(map[string]map[string]string),
		Bridge:  make(map[string]model.BridgeKeys),
	}

	if err := loadJSON(filepath.Join(dir, fileIlju), &t.Ilju); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, fileTojeong), &t.Tojeong); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, fileSipsin), &t.Sipsin); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, fileGyeok), &t.Gyeok); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, fileUnseong), &t.Unseong); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, fileBridge), &t.Bridge); err != nil {
		return nil, err
	}

	t.iljuKeys = make([]string, 0, len(t.Ilju))
	for k := range t.Ilju {
		t.iljuKeys = append(t.iljuKeys, k)
	}
	sort.Strings(t.iljuKeys)

	return t, nil
}

// loadJSON 读取单个表文件；文件不存在不算错误，保持空表
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
