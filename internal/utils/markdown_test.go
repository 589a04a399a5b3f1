package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasic(t *testing.T) {
	html := RenderMarkdown("**加油** 完成任务")
	if !strings.Contains(html, "<strong>加油</strong>") {
		t.Errorf("bold not rendered: %s", html)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	// 任务/奖励描述是家长输入的，也一样不信任
	html := RenderMarkdown("hello <script>alert(1)</script>")
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag survived sanitization: %s", html)
	}
}

func TestRenderMarkdownAutolink(t *testing.T) {
	html := RenderMarkdown("参考 https://example.com 的做法")
	if !strings.Contains(html, "href=\"https://example.com\"") {
		t.Errorf("url not autolinked: %s", html)
	}
}
