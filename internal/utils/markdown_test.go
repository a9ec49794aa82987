package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out := string(RenderMarkdown("## Hello\n\nSome **bold** text."))
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hi\n\n<script>alert('evil')</script>\n\nbye"))
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert('evil')")
	assert.Contains(t, out, "hi")
	assert.Contains(t, out, "bye")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	out := string(RenderMarkdown(`<p onclick="steal()">click me</p>`))
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "steal()")
}

func TestRenderMarkdownKeepsImagesWithSafetyAttrs(t *testing.T) {
	out := string(RenderMarkdown("![a cat](https://example.com/cat.png)"))
	assert.Contains(t, out, "<img")
	assert.Contains(t, out, "https://example.com/cat.png")
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `referrerpolicy="no-referrer"`)
}

func TestRenderMarkdownDropsJavascriptLinks(t *testing.T) {
	out := string(RenderMarkdown("[bad](javascript:alert(1))"))
	assert.NotContains(t, out, "javascript:")
}

func TestRenderMarkdownLinksOpenInNewTab(t *testing.T) {
	out := string(RenderMarkdown("[home](https://example.com/)"))
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
}
