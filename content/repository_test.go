package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

func writeDoc(t *testing.T, dir, category, slug, doc string) {
	t.Helper()
	categoryDir := filepath.Join(dir, category)
	require.NoError(t, os.MkdirAll(categoryDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(categoryDir, slug+".md"), []byte(doc), 0o644))
}

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRepository(dir, zerolog.Nop()), dir
}

func TestListSortsByDateDescending(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "older", "---\ntitle: Older\ndate: \"2024-01-01\"\n---\nBody.\n")
	writeDoc(t, dir, "posts", "newer", "---\ntitle: Newer\ndate: \"2025-06-15\"\n---\nBody.\n")
	writeDoc(t, dir, "posts", "middle", "---\ntitle: Middle\ndate: \"2024-12-31\"\n---\nBody.\n")

	views, err := repo.List("posts")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "newer", views[0].Slug)
	assert.Equal(t, "middle", views[1].Slug)
	assert.Equal(t, "older", views[2].Slug)
}

func TestListTieBreaksDeterministically(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "zebra", "---\ntitle: Z\ndate: \"2025-01-01\"\n---\nBody.\n")
	writeDoc(t, dir, "posts", "apple", "---\ntitle: A\ndate: \"2025-01-01\"\n---\nBody.\n")

	views, err := repo.List("posts")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "apple", views[0].Slug)
	assert.Equal(t, "zebra", views[1].Slug)
}

func TestDraftInSlugsButNotInList(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "published", "---\ntitle: Published\ndate: \"2025-01-01\"\n---\nBody.\n")
	writeDoc(t, dir, "posts", "secret", "---\ntitle: Secret\ndate: \"2025-01-02\"\ndraft: true\n---\nBody.\n")

	views, err := repo.List("posts")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "published", views[0].Slug)

	slugs, err := repo.Slugs("posts")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"published", "secret"}, slugs)

	// A draft stays directly fetchable.
	doc, err := repo.Get("posts", "secret")
	require.NoError(t, err)
	assert.True(t, doc.Draft)
}

func TestGetUnknownSlugIsNotFound(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "exists", "---\ntitle: Exists\ndate: \"2025-01-01\"\n---\nBody.\n")

	_, err := repo.Get("posts", "missing")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestInvalidDocumentExcludedFromListButErrorsOnGet(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "good", "---\ntitle: Good\ndate: \"2025-01-01\"\n---\nBody.\n")
	writeDoc(t, dir, "posts", "broken", "---\ndate: \"2025-01-02\"\n---\nNo title here.\n")

	views, err := repo.List("posts")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "good", views[0].Slug)

	_, err = repo.Get("posts", "broken")
	require.Error(t, err)
	assert.True(t, errs.IsContentSchema(err))
}

func TestReadingTime(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "long",
		"---\ntitle: Long\ndate: \"2025-01-01\"\n---\n"+strings.Repeat("word ", 400))
	writeDoc(t, dir, "posts", "short",
		"---\ntitle: Short\ndate: \"2025-01-02\"\n---\nword")

	long, err := repo.Get("posts", "long")
	require.NoError(t, err)
	assert.Equal(t, 2, long.ReadingTime)

	short, err := repo.Get("posts", "short")
	require.NoError(t, err)
	assert.Equal(t, 1, short.ReadingTime)
}

func TestFullMetadataDecodes(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "projects", "widget", `---
title: Widget
date: "2025-02-01"
summary: A small widget.
tags:
  - go
  - web
cover: /images/widget.png
links:
  repo: https://github.com/user/widget
  live: https://widget.example.com
metrics:
  stars: 42
  downloads: 1200
gallery:
  images:
    - src: /images/one.png
      caption: First
    - /images/two.png
---
Widget body.
`)

	doc, err := repo.Get("projects", "widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget", doc.Title)
	assert.Equal(t, "A small widget.", doc.Summary)
	assert.Equal(t, []string{"go", "web"}, doc.Tags)
	assert.Equal(t, "/images/widget.png", doc.Cover)
	require.NotNil(t, doc.Links)
	assert.Equal(t, "https://github.com/user/widget", doc.Links.Repo)
	assert.Equal(t, "https://widget.example.com", doc.Links.Live)
	assert.Equal(t, float64(42), doc.Metrics["stars"])
	require.NotNil(t, doc.Gallery)
	require.Len(t, doc.Gallery.Images, 2)
	assert.Equal(t, "First", doc.Gallery.Images[0].Caption)
	assert.Equal(t, "/images/two.png", doc.Gallery.Images[1].Src)
}

func TestMalformedLinkFailsValidation(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "projects", "bad-link", `---
title: Bad Link
date: "2025-02-01"
links:
  repo: not a url
---
Body.
`)

	_, err := repo.Get("projects", "bad-link")
	require.Error(t, err)
	assert.True(t, errs.IsContentSchema(err))
}

func TestUnquotedYAMLDateAccepted(t *testing.T) {
	repo, dir := newTestRepository(t)
	writeDoc(t, dir, "posts", "bare-date", "---\ntitle: Bare\ndate: 2025-04-01\n---\nBody.\n")

	doc, err := repo.Get("posts", "bare-date")
	require.NoError(t, err)
	assert.Equal(t, 2025, doc.Date.Year())
}

func TestMissingCategoryDirErrors(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.List("nonexistent")
	assert.Error(t, err)
}
