// Package skills holds the catalog of skills that learners are traced on.
package skills

import (
	"fmt"
	"strings"
)

// Skill is a single traced skill.
type Skill struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Fallback is the skill used when a question carries no usable skill id.
const Fallback = "general"

var catalog = []Skill{
	{ID: "historical_knowledge", Description: "Recall of key facts, dates, people, events"},
	{ID: "historical_analysis", Description: "Cause-effect, comparison, interpretation"},
	{ID: "historical_understanding", Description: "Conceptual understanding of the topic"},
	{ID: "critical_thinking", Description: "Reasoning, evaluation, inference"},
	{ID: "source_evaluation", Description: "Primary/secondary source reasoning"},
	{ID: "chronology", Description: "Sequencing and timelines"},
	{ID: Fallback, Description: "Fallback skill key"},
}

var byID = func() map[string]Skill {
	m := make(map[string]Skill, len(catalog))
	for _, s := range catalog {
		m[s.ID] = s
	}
	return m
}()

// All returns every catalog skill in catalog order.
func All() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns the catalog skill ids in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, s := range catalog {
		ids[i] = s.ID
	}
	return ids
}

// Get returns the skill with the given id.
func Get(id string) (Skill, error) {
	s, ok := byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill %q not found", id)
	}
	return s, nil
}

// Exists reports whether id names a catalog skill.
func Exists(id string) bool {
	_, ok := byID[id]
	return ok
}

// Normalize maps a free-form skill key onto the catalog.
// Unknown or empty keys resolve to Fallback.
func Normalize(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if Exists(k) {
		return k
	}
	return Fallback
}
