package calendar

import (
	"testing"

	"github.com/iWorld-y/saju_scribe/internal/model"
)

func TestHangulize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"戊戌", "무술"},
		{"庚申", "경신"},
		{"壬子", "임자"},
		{"甲子", "갑자"},
	}
	for _, c := range cases {
		got, err := Hangulize(c.in)
		if err != nil {
			t.Errorf("Hangulize(%q) error = %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Hangulize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHangulize_Invalid(t *testing.T) {
	for _, in := range []string{"", "戊", "戊戌戌", "AB", "子戊"} {
		if _, err := Hangulize(in); err == nil {
			t.Errorf("Hangulize(%q) = nil error", in)
		}
	}
}

func TestResolve_Solar(t *testing.T) {
	ps, err := Resolve(1976, 4, 16, "밤 11시", false)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ps.Day != "무술" {
		t.Errorf("day pillar = %q, want 무술", ps.Day)
	}
	if ps.Hour != "밤 11시" {
		t.Errorf("hour = %q, want passthrough label", ps.Hour)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	a, err := Resolve(1990, 7, 15, "", false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Resolve(1990, 7, 15, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Errorf("Resolve() not deterministic: %+v vs %+v", a, b)
	}
}

func TestResolve_EmptyHourIsUnknown(t *testing.T) {
	ps, err := Resolve(2000, 1, 1, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if ps.Hour != model.HourUnknown {
		t.Errorf("hour = %q, want %q", ps.Hour, model.HourUnknown)
	}
}

func TestResolve_InvalidSolarDate(t *testing.T) {
	cases := [][3]int{
		{2023, 2, 30},
		{2023, 13, 1},
		{2023, 0, 10},
		{2023, 6, 0},
		{2023, 4, 31},
	}
	for _, c := range cases {
		if _, err := Resolve(c[0], c[1], c[2], "", false); err == nil {
			t.Errorf("Resolve(%v) = nil error", c)
		}
	}
}

func TestResolve_Lunar(t *testing.T) {
	ps, err := Resolve(1976, 3, 17, "", true)
	if err != nil {
		t.Fatalf("Resolve(lunar) error = %v", err)
	}
	if len([]rune(ps.Day)) != 2 {
		t.Errorf("lunar day pillar = %q, want two hangul syllables", ps.Day)
	}
}

func TestResolve_InvalidLunarDate(t *testing.T) {
	// 下层库对非法农历输入会 panic，这里必须转成错误
	if _, err := Resolve(2023, 13, 1, "", true); err == nil {
		t.Error("Resolve(lunar month 13) = nil error")
	}
}
