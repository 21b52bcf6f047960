package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `---
title: Staying Hydrated
slug: staying-hydrated
category: nutrition
summary: How much water you really need.
author: Dr. Lee
date: 2026-01-15
---

# Why water matters

Drink **regularly** through the day.
`

func TestParseDocument(t *testing.T) {
	doc, err := NewParser().ParseDocument([]byte(sampleArticle))
	require.NoError(t, err)

	assert.Equal(t, "Staying Hydrated", doc.Meta.Title)
	assert.Equal(t, "staying-hydrated", doc.Meta.Slug)
	assert.Equal(t, "nutrition", doc.Meta.Category)
	assert.Equal(t, "Dr. Lee", doc.Meta.Author)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), doc.PublishedAt)
	assert.True(t, strings.HasPrefix(doc.Body, "# Why water matters"))
	assert.NotContains(t, doc.Body, "title:")
}

func TestParseDocumentErrors(t *testing.T) {
	p := NewParser()

	_, err := p.ParseDocument([]byte("# no frontmatter"))
	assert.Error(t, err)

	_, err = p.ParseDocument([]byte("---\ncategory: sleep\n---\nbody"))
	assert.ErrorContains(t, err, "title")

	_, err = p.ParseDocument([]byte("---\ntitle: T\ncategory: sleep\ndate: 15/01/2026\n---\nbody"))
	assert.ErrorContains(t, err, "date")
}

func TestRender(t *testing.T) {
	html, err := NewParser().Render([]byte("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>"))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(""))
	assert.Equal(t, 1, ReadTime("a few words"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", 201)))
}
