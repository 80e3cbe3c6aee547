package testdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/glossview/internal/database/repository"
	"github.com/jask/glossview/internal/glossary"
)

var sampleTerms = []repository.Term{
	{Name: "Glossary", Description: "An alphabetical list of terms with their definitions."},
	{Name: "Term", Description: "A word or phrase with a precise meaning in a given field."},
	{Name: "Definition", Description: "A statement of the exact meaning of a term."},
	{Name: "Graph", Description: "A set of nodes connected by edges."},
	{Name: "Node", Description: "A vertex of a graph; here, one concept."},
	{Name: "Edge", Description: "A directed relation between two nodes."},
	{Name: "API", Description: "The HTTP interface the viewer reads terms and the graph from."},
}

// Sample returns the glossary graph written by WriteGraph.
func Sample() glossary.Graph {
	var g glossary.Graph
	for i, t := range sampleTerms {
		g.Nodes = append(g.Nodes, glossary.GraphNode{ID: nodeID(i), Label: t.Name, Description: t.Description})
	}
	rel := func(from, to int, relation string) {
		g.Edges = append(g.Edges, glossary.GraphEdge{From: nodeID(from), To: nodeID(to), Relation: relation})
	}
	rel(0, 1, "contains")
	rel(1, 2, "has")
	rel(3, 4, "consists of")
	rel(3, 5, "consists of")
	rel(5, 4, "connects")
	rel(4, 1, "represents")
	rel(6, 0, "serves")
	rel(6, 3, "serves")
	return g
}

func nodeID(i int) glossary.NodeID { return glossary.NodeID(fmt.Sprint(i + 1)) }

// Seed inserts the sample terms that are not present yet. It returns how many were added.
func Seed(ctx context.Context, terms *repository.TermRepo) (int, error) {
	added := 0
	for _, t := range sampleTerms {
		existing, err := terms.ByName(ctx, t.Name)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}
		if _, err := terms.Create(ctx, t); err != nil {
			return added, fmt.Errorf("seed %q: %w", t.Name, err)
		}
		added++
	}
	return added, nil
}

// WriteGraph writes the sample graph to path unless a file is already there.
func WriteGraph(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	data, err := json.MarshalIndent(Sample(), "", "  ")
	if err != nil {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	return true, os.WriteFile(path, data, 0o644)
}
