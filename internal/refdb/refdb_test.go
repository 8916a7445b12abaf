package refdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTables_MissingFilesYieldEmptyTables(t *testing.T) {
	db := Open(t.TempDir())
	tables, err := db.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if len(tables.Ilju) != 0 || len(tables.Tojeong) != 0 || len(tables.Bridge) != 0 {
		t.Errorf("expected empty tables, got %+v", tables)
	}
	if len(tables.IljuKeys()) != 0 {
		t.Errorf("IljuKeys() = %v, want empty", tables.IljuKeys())
	}
}

func TestTables_Memoized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "60ganja.json")
	if err := os.WriteFile(path, []byte(`{"01": {"ilju": "갑자(甲子)"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	db := Open(dir)
	first, err := db.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}

	// 首次加载后改写文件，再次调用必须拿到同一缓存实例
	if err := os.WriteFile(path, []byte(`{"01": {"ilju": "을축(乙丑)"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	second, err := db.Tables()
	if err != nil {
		t.Fatalf("Tables() second error = %v", err)
	}
	if first != second {
		t.Error("Tables() returned a different instance on second call")
	}
	if second.Ilju["01"].Ilju != "갑자(甲子)" {
		t.Errorf("cached table was reloaded, got %q", second.Ilju["01"].Ilju)
	}
}

func TestTables_MalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sipsin_data.json"), []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(dir).Tables()
	if err == nil {
		t.Fatal("Tables() = nil error for malformed file")
	}
	if !strings.Contains(err.Error(), "sipsin_data.json") {
		t.Errorf("error %q does not name the broken file", err)
	}
}

func TestTables_IljuKeysSorted(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"03": {"ilju": "병인(丙寅)"},
		"01": {"ilju": "갑자(甲子)"},
		"02": {"ilju": "을축(乙丑)"}
	}`
	if err := os.WriteFile(filepath.Join(dir, "60ganja.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := Open(dir).Tables()
	if err != nil {
		t.Fatal(err)
	}
	keys := tables.IljuKeys()
	want := []string{"01", "02", "03"}
	if len(keys) != len(want) {
		t.Fatalf("IljuKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("IljuKeys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestTables_HeterogeneousGyeok(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"식신격(食神格)": "복이 많은 격국",
		"건록격(建祿格)": {"요약": "자수성가", "조언": "독립"}
	}`
	if err := os.WriteFile(filepath.Join(dir, "gyeok_data.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := Open(dir).Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if got := tables.Gyeok["식신격(食神格)"].Text; got != "복이 많은 격국" {
		t.Errorf("string entry = %q", got)
	}
	if got := tables.Gyeok["건록격(建祿格)"].Record["요약"]; got != "자수성가" {
		t.Errorf("record entry = %q", got)
	}
}
