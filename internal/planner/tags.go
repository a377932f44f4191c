// Package planner holds the rule-based itinerary and trip-cost logic. It has
// no storage or transport dependencies.
package planner

import (
	"fmt"
	"sort"
	"strings"
)

// Tag is a generator-facing preference label.
type Tag string

const (
	TagBeach    Tag = "beach"
	TagMountain Tag = "mountain"
	TagCulture  Tag = "culture"
	TagNature   Tag = "nature"
	TagCity     Tag = "city"
)

// tagCategories maps each preference tag onto catalog category slugs.
var tagCategories = map[Tag][]string{
	TagBeach:    {"bien-dao"},
	TagMountain: {"nui-rung"},
	TagCulture:  {"van-hoa-lich-su"},
	TagNature:   {"thien-nhien", "nui-rung"},
	TagCity:     {"thanh-pho"},
}

// Tags lists the recognised tags in a stable order.
func Tags() []Tag {
	return []Tag{TagBeach, TagMountain, TagCulture, TagNature, TagCity}
}

// CategorySlugsFor returns the slugs a single tag maps onto.
func CategorySlugsFor(tag Tag) []string {
	return append([]string(nil), tagCategories[tag]...)
}

// ParseTags normalises raw preference strings. Unknown labels are dropped and
// duplicates collapse onto their first occurrence.
func ParseTags(raw []string) []Tag {
	seen := make(map[Tag]struct{}, len(raw))
	out := make([]Tag, 0, len(raw))
	for _, value := range raw {
		tag := Tag(strings.ToLower(strings.TrimSpace(value)))
		if _, ok := tagCategories[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// CategorySlugs resolves tags to the de-duplicated union of their slugs.
func CategorySlugs(tags []Tag) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tag := range tags {
		for _, slug := range tagCategories[tag] {
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			out = append(out, slug)
		}
	}
	return out
}

// MissingCategoriesError lists mapped slugs absent from the category catalog.
type MissingCategoriesError struct {
	Slugs []string
}

func (e *MissingCategoriesError) Error() string {
	return fmt.Sprintf("preference tags reference unknown categories: %s", strings.Join(e.Slugs, ", "))
}

// ValidateTagMapping checks every mapped slug against the known catalog slugs.
func ValidateTagMapping(known []string) error {
	index := make(map[string]struct{}, len(known))
	for _, slug := range known {
		index[strings.ToLower(strings.TrimSpace(slug))] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, slugs := range tagCategories {
		for _, slug := range slugs {
			if _, ok := index[slug]; !ok {
				missing[slug] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(missing))
	for slug := range missing {
		out = append(out, slug)
	}
	sort.Strings(out)
	return &MissingCategoriesError{Slugs: out}
}
