// Package core holds the page discovery and target synthesis domain.
package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PageID is the canonical short name of a page, derived from its source
// filename with the directory and final extension removed.
type PageID string

// Page is one discovered page module.
// Source is the absolute, resolved path of the module on disk.
type Page struct {
	ID     PageID
	Source string
}

// TargetMap maps page identifiers to their source module.
// It is the multi-entry input handed to the bundler.
type TargetMap map[string]string

// MinifyPolicy controls how a generated document is minified.
type MinifyPolicy struct {
	CollapseWhitespace    bool `json:"collapseWhitespace" yaml:"collapseWhitespace"`
	RemoveComments        bool `json:"removeComments" yaml:"removeComments"`
	RemoveAttributeQuotes bool `json:"removeAttributeQuotes" yaml:"removeAttributeQuotes"`
}

// DefaultMinify is applied to every directive, regardless of mode.
var DefaultMinify = MinifyPolicy{
	CollapseWhitespace:    true,
	RemoveComments:        true,
	RemoveAttributeQuotes: true,
}

// Directive instructs the document generator to emit one HTML file
// that loads the compiled chunks listed in AllowedChunks and nothing else.
type Directive struct {
	OutputFilename string       `json:"outputFilename" yaml:"outputFilename"`
	TemplatePath   string       `json:"templatePath" yaml:"templatePath"`
	AllowedChunks  []string     `json:"allowedChunks" yaml:"allowedChunks"`
	Inject         bool         `json:"inject" yaml:"inject"`
	Minify         MinifyPolicy `json:"minify" yaml:"minify"`
}

// Entry pairs a page with the directive built for it.
type Entry struct {
	Page      Page
	Directive Directive
}

// EventType represents the type of change observed in the page directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a page module.
type Event struct {
	Type      EventType
	ID        PageID
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

// Structural reports whether the event changes the set of pages
// (and therefore the generated configuration).
func (e Event) Structural() bool {
	return e.Type == EventCreate || e.Type == EventDelete
}

// DerivePageID strips the directory and the final extension from path.
// "src/pages/login.js" becomes "login"; "app.page.ts" becomes "app.page".
func DerivePageID(path string) PageID {
	base := filepath.Base(path)
	return PageID(strings.TrimSuffix(base, filepath.Ext(base)))
}
