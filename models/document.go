package models

import "time"

// Links holds the optional structured URLs attached to a document. Each one
// must parse as a well-formed URL when present.
type Links struct {
	Repo      string `json:"repo,omitempty" yaml:"repo"`
	Live      string `json:"live,omitempty" yaml:"live"`
	CaseStudy string `json:"caseStudy,omitempty" yaml:"caseStudy"`
}

// GalleryItem is a single image or video with an optional caption.
type GalleryItem struct {
	Src     string `json:"src" yaml:"src"`
	Caption string `json:"caption,omitempty" yaml:"caption"`
}

// Gallery groups a document's ordered media.
type Gallery struct {
	Images []GalleryItem `json:"images,omitempty" yaml:"images"`
	Videos []GalleryItem `json:"videos,omitempty" yaml:"videos"`
}

// DocumentMeta is the validated front-matter of a content document.
type DocumentMeta struct {
	Title   string             `json:"title" yaml:"title"`
	Date    time.Time          `json:"date" yaml:"date"`
	Summary string             `json:"summary,omitempty" yaml:"summary"`
	Tags    []string           `json:"tags,omitempty" yaml:"tags"`
	Cover   string             `json:"cover,omitempty" yaml:"cover"`
	Draft   bool               `json:"draft,omitempty" yaml:"draft"`
	Links   *Links             `json:"links,omitempty" yaml:"links"`
	Metrics map[string]float64 `json:"metrics,omitempty" yaml:"metrics"`
	Gallery *Gallery           `json:"gallery,omitempty" yaml:"gallery"`
}

// DocumentView is the derived listing view of a document: its metadata plus
// the slug and a computed reading-time estimate. It is built on each read and
// never persisted.
type DocumentView struct {
	DocumentMeta
	Slug        string `json:"slug"`
	ReadingTime int    `json:"readingTime"` // whole minutes, minimum 1
}

// Heading is one entry of a compiled document's heading index.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Document is a single fetched document: derived view, raw body, and the
// compiled render output.
type Document struct {
	DocumentView
	Body     string    `json:"body"`
	HTML     string    `json:"html"`
	Headings []Heading `json:"headings,omitempty"`
}
