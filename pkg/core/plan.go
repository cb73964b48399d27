package core

import (
	"fmt"
	"sort"
)

// Plan is the result of one configuration build: an ordered list of
// page/directive entries plus the mode augmentation. Targets and
// Directives are projections of the same entries, so they cannot drift.
//
// A Plan is immutable; accessors return copies.
type Plan struct {
	mode         Mode
	template     string
	augmentation Augmentation
	entries      []Entry
}

// Synthesize builds a Plan from discovered pages.
//
// Each page yields exactly one entry whose directive outputs "<id>.html",
// uses the shared template and may only load the chunk named <id>.
// Duplicate identifiers are rejected with a *CollisionError.
func Synthesize(pages []Page, template string, mode Mode) (*Plan, error) {
	if template == "" {
		return nil, fmt.Errorf("page template: %w", ErrNotFound)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if err := CheckUnique(pages); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(pages))
	for _, p := range pages {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: empty identifier for %s", ErrInvalidPage, p.Source)
		}
		entries = append(entries, Entry{
			Page:      p,
			Directive: newDirective(p.ID, template),
		})
	}

	plan := &Plan{
		mode:         mode,
		template:     template,
		augmentation: AugmentationFor(mode),
		entries:      entries,
	}
	if err := verify(plan.Targets(), plan.Directives()); err != nil {
		return nil, err
	}
	return plan, nil
}

func newDirective(id PageID, template string) Directive {
	return Directive{
		OutputFilename: OutputFilename(id),
		TemplatePath:   template,
		AllowedChunks:  []string{string(id)},
		Inject:         true,
		Minify:         DefaultMinify,
	}
}

// OutputFilename is the document name generated for a page.
func OutputFilename(id PageID) string {
	return string(id) + ".html"
}

// CheckUnique returns a *CollisionError naming every identifier shared by
// more than one page, with all of the paths involved.
func CheckUnique(pages []Page) error {
	byID := make(map[PageID][]string, len(pages))
	for _, p := range pages {
		byID[p.ID] = append(byID[p.ID], p.Source)
	}

	var collisions []Collision
	for id, paths := range byID {
		if len(paths) < 2 {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		collisions = append(collisions, Collision{ID: id, Paths: sorted})
	}
	if len(collisions) == 0 {
		return nil
	}
	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].ID < collisions[j].ID
	})
	return &CollisionError{Collisions: collisions}
}

// verify asserts the bijection between targets and directives.
func verify(targets TargetMap, directives []Directive) error {
	if len(targets) != len(directives) {
		return &InvariantError{Detail: fmt.Sprintf("%d targets but %d directives", len(targets), len(directives))}
	}

	seen := make(map[string]bool, len(directives))
	for _, d := range directives {
		if len(d.AllowedChunks) != 1 {
			return &InvariantError{Detail: fmt.Sprintf("%s allows %d chunks", d.OutputFilename, len(d.AllowedChunks))}
		}
		id := d.AllowedChunks[0]
		if _, ok := targets[id]; !ok {
			return &InvariantError{Detail: fmt.Sprintf("%s references unknown chunk %q", d.OutputFilename, id)}
		}
		if d.OutputFilename != OutputFilename(PageID(id)) {
			return &InvariantError{Detail: fmt.Sprintf("%s does not belong to chunk %q", d.OutputFilename, id)}
		}
		if seen[id] {
			return &InvariantError{Detail: fmt.Sprintf("chunk %q claimed by more than one document", id)}
		}
		seen[id] = true
	}
	return nil
}

// Mode returns the build mode the plan was synthesized for.
func (p *Plan) Mode() Mode { return p.mode }

// Template returns the shared page-shell template path.
func (p *Plan) Template() string { return p.template }

// Augmentation returns the mode-dependent build settings.
func (p *Plan) Augmentation() Augmentation { return p.augmentation }

// Len returns the number of pages in the plan.
func (p *Plan) Len() int { return len(p.entries) }

// Entries returns a copy of the page/directive pairs in discovery order.
func (p *Plan) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		e.Directive.AllowedChunks = append([]string(nil), e.Directive.AllowedChunks...)
		out[i] = e
	}
	return out
}

// IDs returns the page identifiers in discovery order.
func (p *Plan) IDs() []PageID {
	ids := make([]PageID, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.Page.ID
	}
	return ids
}

// Targets projects the compilation-target map.
func (p *Plan) Targets() TargetMap {
	targets := make(TargetMap, len(p.entries))
	for _, e := range p.entries {
		targets[string(e.Page.ID)] = e.Page.Source
	}
	return targets
}

// Directives projects the document directives in discovery order.
func (p *Plan) Directives() []Directive {
	directives := make([]Directive, len(p.entries))
	for i, e := range p.Entries() {
		directives[i] = e.Directive
	}
	return directives
}
