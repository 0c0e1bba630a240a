package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/OFFIS-RIT/wikigraph/pkg/common"
	"github.com/OFFIS-RIT/wikigraph/pkg/infobox"
	"github.com/OFFIS-RIT/wikigraph/pkg/loader"
)

// RelationExtractor returns the relations recorded on a page.
//
// An error means the page could not be read; callers treat it the same as a
// page without relations.
type RelationExtractor interface {
	Extract(ctx context.Context, title string) (Relations, error)
}

type fieldRule struct {
	substring string
	kind      common.RelationKind
}

// Order matters: the first rule contained in a label wins.
var fieldRules = []fieldRule{
	{substring: "parent", kind: common.RelationParentOf},
	{substring: "subsidiaries", kind: common.RelationOwns},
	{substring: "founder", kind: common.RelationFounded},
	{substring: "key people", kind: common.RelationKeyPersonOf},
	{substring: "owner", kind: common.RelationParentOf},
}

var disambiguationSuffix = regexp.MustCompile(`\s*\([^)]*\)$`)

// InfoboxExtractor reads relations from the infobox of a page.
type InfoboxExtractor struct {
	loader loader.PageLoader
}

func NewInfoboxExtractor(l loader.PageLoader) *InfoboxExtractor {
	return &InfoboxExtractor{loader: l}
}

// Extract fetches title and maps recognised infobox rows to relations.
func (e *InfoboxExtractor) Extract(ctx context.Context, title string) (Relations, error) {
	page, err := e.loader.LoadPage(ctx, title)
	if err != nil {
		fetchTotal.WithLabelValues(operationExtract, resultError).Inc()
		return Relations{}, fmt.Errorf("failed to load %q: %w", title, err)
	}

	box, err := infobox.Parse(bytes.NewReader(page.Body))
	if err != nil {
		fetchTotal.WithLabelValues(operationExtract, resultNoInfobox).Inc()
		return Relations{}, fmt.Errorf("failed to read infobox of %q: %w", title, err)
	}

	fetchTotal.WithLabelValues(operationExtract, resultOK).Inc()
	return relationsFromInfobox(box), nil
}

func relationsFromInfobox(box *infobox.Infobox) Relations {
	var rel Relations
	for _, field := range box.Fields {
		kind, ok := matchField(field.Label)
		if !ok {
			continue
		}

		names := make([]string, 0, len(field.Links))
		for _, link := range field.Links {
			if link.IsAnchor() || link.Title == "" || link.IsFile() {
				continue
			}
			names = append(names, StripDisambiguation(link.Title))
		}
		rel.Add(kind, names...)
	}
	return rel
}

func matchField(label string) (common.RelationKind, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, rule := range fieldRules {
		if strings.Contains(label, rule.substring) {
			return rule.kind, true
		}
	}
	return "", false
}

// StripDisambiguation removes a trailing parenthetical such as " (executive)".
func StripDisambiguation(name string) string {
	return disambiguationSuffix.ReplaceAllString(name, "")
}
