// Package glossary holds the wire types shared by the API client, the loaders and the dev server.
package glossary

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Term is one glossary entry.
type Term struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NodeID identifies a graph node. The API may send it as a JSON string or number; either is
// kept as its canonical text so 7 and "7" are the same node.
type NodeID string

func (id *NodeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NodeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("node id must be a string or number: %s", data)
	}
	*id = NodeID(n.String())
	return nil
}

// GraphNode is a vertex of the relationship graph.
type GraphNode struct {
	ID          NodeID `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// GraphEdge links two nodes. From and To are not checked against the node list.
type GraphEdge struct {
	From     NodeID `json:"from"`
	To       NodeID `json:"to"`
	Relation string `json:"relation"`
}

// Graph is the payload of GET /graph.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
