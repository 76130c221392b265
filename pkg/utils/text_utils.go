package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 按单词把文本折成不超过 maxWidth 像素的多行
//
// 单个单词比 maxWidth 还宽时按字符强制断开。
// 文本为空、字体为 nil 或 maxWidth <= 0 时原样返回一行。
func WrapText(str string, face *text.GoTextFace, maxWidth float64) []string {
	if str == "" || face == nil || maxWidth <= 0 {
		return []string{str}
	}
	if MeasureTextWidth(str, face) <= maxWidth {
		return []string{str}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(str) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if MeasureTextWidth(candidate, face) <= maxWidth {
			line = candidate
			continue
		}

		if line != "" {
			lines = append(lines, line)
		}
		line = word

		// 超长单词
		for MeasureTextWidth(line, face) > maxWidth {
			head, tail := splitAtWidth(line, face, maxWidth)
			lines = append(lines, head)
			line = tail
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// splitAtWidth 把 s 拆成宽度不超过 maxWidth 的前缀和剩余部分（前缀至少一个字符）
func splitAtWidth(s string, face *text.GoTextFace, maxWidth float64) (string, string) {
	runes := []rune(s)
	n := 1
	for n < len(runes) && MeasureTextWidth(string(runes[:n+1]), face) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// MeasureTextWidth 测量单行文本宽度（像素）
func MeasureTextWidth(str string, face *text.GoTextFace) float64 {
	if str == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(str, face, 0)
	return width
}
