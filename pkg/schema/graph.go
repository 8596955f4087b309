package schema

import (
	"sort"
	"strings"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
)

// Edge records that fromSchema structurally embeds a reference to toSchema.
// Edges exist only to order emission; they are recomputed every run.
type Edge struct {
	From string
	To   string
}

// Edges walks every named schema and collects its direct dependency edges.
// Self references are dropped: a schema may legally refer to itself through a
// lazy binding without constraining emission order.
func Edges(doc Document) []Edge {
	var edges []Edge
	for _, named := range doc.Schemas {
		seen := make(map[string]struct{})
		collectRefs(named.Node, seen)
		targets := make([]string, 0, len(seen))
		for target := range seen {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			if target == named.Name {
				continue
			}
			edges = append(edges, Edge{From: named.Name, To: target})
		}
	}
	return edges
}

func collectRefs(node Node, seen map[string]struct{}) {
	switch node.Kind {
	case KindReference:
		seen[node.Target] = struct{}{}
	case KindArray:
		if node.Items != nil {
			collectRefs(*node.Items, seen)
		}
	case KindObject:
		for _, prop := range node.Properties {
			collectRefs(prop.Node, seen)
		}
	}
}

// SortDependencies orders named schemas so that every schema appears after
// all schemas it references. Ties break by declaration order, making the
// output deterministic. A genuine reference cycle between two or more schemas
// yields a dependency-cycle error instead of a silently wrong order.
func SortDependencies(doc Document) ([]Named, error) {
	index := make(map[string]int, len(doc.Schemas))
	for i, named := range doc.Schemas {
		index[named.Name] = i
	}

	dependsOn := make(map[string][]string, len(doc.Schemas))
	dependants := make(map[string][]string, len(doc.Schemas))
	inDegree := make(map[string]int, len(doc.Schemas))
	for _, named := range doc.Schemas {
		inDegree[named.Name] = 0
	}
	for _, edge := range Edges(doc) {
		if _, ok := index[edge.To]; !ok {
			return nil, generr.Newf(generr.CodeUnresolvedRef,
				"schema %q references undeclared schema %q", edge.From, edge.To)
		}
		dependsOn[edge.From] = append(dependsOn[edge.From], edge.To)
		dependants[edge.To] = append(dependants[edge.To], edge.From)
		inDegree[edge.From]++
	}

	// Kahn's algorithm; the ready set stays sorted by declaration order so
	// independent schemas keep their document sequence.
	var ready []string
	for _, named := range doc.Schemas {
		if inDegree[named.Name] == 0 {
			ready = append(ready, named.Name)
		}
	}

	ordered := make([]Named, 0, len(doc.Schemas))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return index[ready[i]] < index[ready[j]]
		})
		name := ready[0]
		ready = ready[1:]

		node, _ := doc.Schema(name)
		ordered = append(ordered, Named{Name: name, Node: node})

		for _, dependant := range dependants[name] {
			inDegree[dependant]--
			if inDegree[dependant] == 0 {
				ready = append(ready, dependant)
			}
		}
	}

	if len(ordered) != len(doc.Schemas) {
		var cyclic []string
		for _, named := range doc.Schemas {
			if inDegree[named.Name] > 0 {
				cyclic = append(cyclic, named.Name)
			}
		}
		return nil, generr.Newf(generr.CodeDependencyCycle,
			"reference cycle between schemas: %s", strings.Join(cyclic, ", "))
	}
	return ordered, nil
}
