package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
)

// wordsPerMinute is the fixed reading speed used for the reading-time
// estimate.
const wordsPerMinute = 200

// metaSchema declares the front-matter shape shared by posts and projects.
// Nested structures (links, metrics, gallery) are validated separately since
// the generic validator covers primitive fields.
var metaSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "title", Type: schema.TypeString, Required: true, MinLen: 1},
		{Name: "date", Type: schema.TypeString, Required: true, Date: true},
		{Name: "summary", Type: schema.TypeString},
		{Name: "tags", Type: schema.TypeStringList},
		{Name: "cover", Type: schema.TypeString},
		{Name: "draft", Type: schema.TypeBool},
	},
}

// yamlFrontmatter decodes the metadata header with yaml.v3 so nested maps
// come back keyed by string.
var yamlFrontmatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Repository reads content documents from <dir>/<category>/<slug>.md files.
// Documents are authored externally and never mutated at runtime, so every
// read goes straight to disk.
type Repository struct {
	dir      string
	compiler *Compiler
	logger   zerolog.Logger
}

func NewRepository(dir string, logger zerolog.Logger) *Repository {
	return &Repository{
		dir:      dir,
		compiler: NewCompiler(),
		logger:   logger.With().Str("component", "contentRepository").Logger(),
	}
}

// List returns the derived view of every valid, non-draft document in a
// category, sorted by publication date descending (slug ascending on ties).
// Documents that fail validation are excluded and logged rather than failing
// the whole listing, so one bad document cannot take down the index.
func (r *Repository) List(category string) ([]models.DocumentView, error) {
	slugs, err := r.allSlugs(category)
	if err != nil {
		return nil, err
	}

	views := make([]models.DocumentView, 0, len(slugs))
	for _, slug := range slugs {
		view, _, err := r.load(category, slug)
		if err != nil {
			r.logger.Error().
				Str("category", category).
				Str("slug", slug).
				Err(err).
				Msg("Skipping invalid document")
			continue
		}
		if view.Draft {
			continue
		}
		views = append(views, *view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Date.Equal(views[j].Date) {
			return views[i].Date.After(views[j].Date)
		}
		return views[i].Slug < views[j].Slug
	})
	return views, nil
}

// Get returns one document with its raw body and compiled output, or a
// not-found error if no document has the slug. A validation failure surfaces
// directly so the author sees it on the page being fixed.
func (r *Repository) Get(category, slug string) (*models.Document, error) {
	view, body, err := r.load(category, slug)
	if err != nil {
		return nil, err
	}

	compiled, err := r.compiler.Compile(body)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause(
			fmt.Sprintf("failed to compile document %s/%s", category, slug), err)
	}

	return &models.Document{
		DocumentView: *view,
		Body:         body,
		HTML:         compiled.HTML,
		Headings:     compiled.Headings,
	}, nil
}

// Slugs returns every slug in a category, drafts included. Listing stays the
// public surface; this enumerates documents for build tooling.
func (r *Repository) Slugs(category string) ([]string, error) {
	return r.allSlugs(category)
}

func (r *Repository) allSlugs(category string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dir, category))
	if err != nil {
		return nil, errs.NewInternalErrorWithCause(
			fmt.Sprintf("failed to read content category %s", category), err)
	}

	var slugs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, ".md"))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// load reads one document file, validates its front-matter, and derives the
// view. It returns the raw body alongside so Get can compile it.
func (r *Repository) load(category, slug string) (*models.DocumentView, string, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, category, slug+".md"))
	if os.IsNotExist(err) {
		return nil, "", errs.NewNotFound(fmt.Sprintf("document %s/%s", category, slug))
	}
	if err != nil {
		return nil, "", errs.NewInternalErrorWithCause(
			fmt.Sprintf("failed to read document %s/%s", category, slug), err)
	}

	var raw map[string]any
	body, err := frontmatter.MustParse(bytes.NewReader(data), &raw, yamlFrontmatter)
	if err != nil {
		return nil, "", errs.NewContentSchemaError(category, slug,
			fmt.Errorf("parse front-matter: %w", err))
	}

	meta, err := decodeMeta(raw)
	if err != nil {
		return nil, "", errs.NewContentSchemaError(category, slug, err)
	}

	bodyText := string(body)
	view := &models.DocumentView{
		DocumentMeta: *meta,
		Slug:         slug,
		ReadingTime:  readingTime(bodyText),
	}
	return view, bodyText, nil
}

// decodeMeta validates the raw front-matter and assembles the typed metadata.
// Primitive fields go through the schema validator; nested structures are
// checked here. All failures are collected before reporting.
func decodeMeta(raw map[string]any) (*models.DocumentMeta, error) {
	// yaml.v3 resolves unquoted timestamp scalars to time.Time; fold them
	// back to strings so the declared string-date shape applies either way.
	if t, ok := raw["date"].(time.Time); ok {
		raw["date"] = t.Format(time.RFC3339)
	}

	normalized, vErr := metaSchema.Validate(raw)

	var failures []errs.FieldError
	if vErr != nil {
		failures = vErr.Fields
	}

	links, errsLinks := decodeLinks(raw["links"])
	failures = append(failures, errsLinks...)

	metrics, errsMetrics := decodeMetrics(raw["metrics"])
	failures = append(failures, errsMetrics...)

	gallery, errsGallery := decodeGallery(raw["gallery"])
	failures = append(failures, errsGallery...)

	if len(failures) > 0 {
		return nil, errs.NewValidationError(failures)
	}

	date, err := schema.ParseDate(normalized["date"].(string))
	if err != nil {
		// Unreachable: the Date constraint already vetted the string.
		return nil, err
	}

	meta := &models.DocumentMeta{
		Title:   normalized["title"].(string),
		Date:    date,
		Links:   links,
		Metrics: metrics,
		Gallery: gallery,
	}
	if v, ok := normalized["summary"].(string); ok {
		meta.Summary = v
	}
	if v, ok := normalized["tags"].([]string); ok {
		meta.Tags = v
	}
	if v, ok := normalized["cover"].(string); ok {
		meta.Cover = v
	}
	if v, ok := normalized["draft"].(bool); ok {
		meta.Draft = v
	}
	return meta, nil
}

func decodeLinks(value any) (*models.Links, []errs.FieldError) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, []errs.FieldError{{Field: "links", Message: "must be an object of named URLs"}}
	}

	links := &models.Links{}
	var failures []errs.FieldError
	assign := func(key string, dst *string) {
		raw, present := m[key]
		if !present || raw == nil {
			return
		}
		str, ok := raw.(string)
		if !ok || !schema.ValidURL(str) {
			failures = append(failures, errs.FieldError{
				Field:   "links." + key,
				Message: "must be a valid URL",
			})
			return
		}
		*dst = str
	}
	assign("repo", &links.Repo)
	assign("live", &links.Live)
	assign("caseStudy", &links.CaseStudy)

	if len(failures) > 0 {
		return nil, failures
	}
	return links, nil
}

func decodeMetrics(value any) (map[string]float64, []errs.FieldError) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, []errs.FieldError{{Field: "metrics", Message: "must be an object of named numbers"}}
	}

	metrics := make(map[string]float64, len(m))
	var failures []errs.FieldError
	for key, raw := range m {
		switch n := raw.(type) {
		case int:
			metrics[key] = float64(n)
		case int64:
			metrics[key] = float64(n)
		case float64:
			metrics[key] = n
		default:
			failures = append(failures, errs.FieldError{
				Field:   "metrics." + key,
				Message: "must be a number",
			})
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return metrics, nil
}

func decodeGallery(value any) (*models.Gallery, []errs.FieldError) {
	if value == nil {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, []errs.FieldError{{Field: "gallery", Message: "must be an object with images/videos arrays"}}
	}

	gallery := &models.Gallery{}
	var failures []errs.FieldError
	decodeItems := func(key string) []models.GalleryItem {
		raw, present := m[key]
		if !present || raw == nil {
			return nil
		}
		list, ok := raw.([]any)
		if !ok {
			failures = append(failures, errs.FieldError{
				Field:   "gallery." + key,
				Message: "must be an array",
			})
			return nil
		}
		items := make([]models.GalleryItem, 0, len(list))
		for i, entry := range list {
			switch v := entry.(type) {
			case string:
				items = append(items, models.GalleryItem{Src: v})
			case map[string]any:
				src, _ := v["src"].(string)
				if src == "" {
					failures = append(failures, errs.FieldError{
						Field:   fmt.Sprintf("gallery.%s[%d]", key, i),
						Message: "must have a src",
					})
					continue
				}
				caption, _ := v["caption"].(string)
				items = append(items, models.GalleryItem{Src: src, Caption: caption})
			default:
				failures = append(failures, errs.FieldError{
					Field:   fmt.Sprintf("gallery.%s[%d]", key, i),
					Message: "must be a path or an object with src/caption",
				})
			}
		}
		return items
	}
	gallery.Images = decodeItems("images")
	gallery.Videos = decodeItems("videos")

	if len(failures) > 0 {
		return nil, failures
	}
	if len(gallery.Images) == 0 && len(gallery.Videos) == 0 {
		return nil, nil
	}
	return gallery, nil
}

// readingTime estimates whole minutes to read the body at 200 words per
// minute, rounding up with a floor of one minute.
func readingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
