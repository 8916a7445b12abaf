package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// :orange[**戊戌**] 之类的行内样式指令，导出时只保留内层文本
var styleDirective = regexp.MustCompile(`:[a-zA-Z]+\[([^\]]*)\]`)

// CleanMarkup 去掉样式指令和加粗标记，得到可排版的纯文本
func CleanMarkup(s string) string {
	s = styleDirective.ReplaceAllString(s, "$1")
	return strings.ReplaceAll(s, "**", "")
}

// 页面版式常量，近似 A4 150dpi
const (
	pageW      = 1240
	pageH      = 1754
	marginX    = 120.0
	marginTop  = 140.0
	marginBot  = 120.0
	lineHeight = 44.0
	fontSize   = 28.0
	titleSize  = 44.0
)

// Renderer 把报告文本排版成分页文档：ZIP 包内每页一张 PNG
type Renderer struct {
	fontPath string
}

// NewRenderer fontPath 指向 TTF 字体文件；文件缺失时退回内置位图字体，
// 韩文会显示为缺字，这是已知且接受的降级，不算失败。
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// Render 清洗标记、按页宽折行、分页绘制，返回 ZIP 字节流
func (r *Renderer) Render(report, displayName string) ([]byte, error) {
	body := CleanMarkup(report)

	bodyFace, titleFace, err := r.loadFaces()
	if err != nil {
		return nil, err
	}

	measure := gg.NewContext(pageW, pageH)
	measure.SetFontFace(bodyFace)
	var lines []string
	for _, para := range strings.Split(body, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, measure.WordWrap(para, pageW-2*marginX)...)
	}

	usable := pageH - marginTop - marginBot
	capacity := int(usable / lineHeight)
	// 首页让出标题两行
	pages := paginate(lines, capacity-2, capacity)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	title := fmt.Sprintf("%s 님의 운명 리포트", displayName)

	for i, pageLines := range pages {
		dc := gg.NewContext(pageW, pageH)
		dc.SetRGB(1, 1, 1)
		dc.Clear()
		dc.SetRGB(0, 0, 0)

		y := marginTop
		if i == 0 {
			dc.SetFontFace(titleFace)
			dc.DrawString(title, marginX, y)
			y += 2 * lineHeight
		}

		dc.SetFontFace(bodyFace)
		for _, line := range pageLines {
			dc.DrawString(line, marginX, y)
			y += lineHeight
		}

		w, err := zw.Create(fmt.Sprintf("page_%02d.png", i+1))
		if err != nil {
			return nil, fmt.Errorf("create page %d: %w", i+1, err)
		}
		if err := dc.EncodePNG(w); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// paginate 把折行结果切成页，至少产出一页
func paginate(lines []string, first, rest int) [][]string {
	if first < 1 {
		first = 1
	}
	if rest < 1 {
		rest = 1
	}

	var pages [][]string
	capacity := first
	for len(lines) > 0 {
		n := capacity
		if n > len(lines) {
			n = len(lines)
		}
		pages = append(pages, lines[:n])
		lines = lines[n:]
		capacity = rest
	}
	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

// loadFaces 加载正文与标题两个字号；字体文件存在但损坏视为导出失败
func (r *Renderer) loadFaces() (font.Face, font.Face, error) {
	if r.fontPath != "" {
		if data, err := os.ReadFile(r.fontPath); err == nil {
			f, err := truetype.Parse(data)
			if err != nil {
				return nil, nil, fmt.Errorf("parse font %s: %w", r.fontPath, err)
			}
			body := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingNone})
			title := truetype.NewFace(f, &truetype.Options{Size: titleSize, DPI: 72, Hinting: font.HintingNone})
			return body, title, nil
		}
	}
	return basicfont.Face7x13, basicfont.Face7x13, nil
}
