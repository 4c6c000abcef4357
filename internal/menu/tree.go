package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

type fileTree struct {
	Title          string     `json:"title"`
	OverwriteQuery bool       `json:"overwrite_query"`
	Items          []fileNode `json:"items"`
}

type fileNode struct {
	Title    string     `json:"title"`
	Param    string     `json:"param"`
	Value    string     `json:"value"`
	Children []Redirect `json:"children"`
}

// ParseTree decodes a JSONC menu definition. Entries with children become
// dropdowns; the rest must name a query parameter.
func ParseTree(data []byte) (Tree, error) {
	var raw fileTree
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return Tree{}, fmt.Errorf("parsing menu: %w", err)
	}
	tree := Tree{Title: raw.Title, OverwriteQuery: raw.OverwriteQuery}
	if tree.Title == "" {
		tree.Title = "Filter"
	}
	var errs []error
	for i, item := range raw.Items {
		if item.Title == "" {
			errs = append(errs, fmt.Errorf("item %d: missing title", i))
			continue
		}
		if len(item.Children) > 0 {
			for j, child := range item.Children {
				if child.Title == "" || child.Param == "" {
					errs = append(errs, fmt.Errorf("item %d child %d: title and param are required", i, j))
				}
			}
			tree.Nodes = append(tree.Nodes, Dropdown{Title: item.Title, Children: item.Children})
			continue
		}
		if item.Param == "" {
			errs = append(errs, fmt.Errorf("item %d (%s): missing param", i, item.Title))
			continue
		}
		tree.Nodes = append(tree.Nodes, Redirect{Title: item.Title, Param: item.Param, Value: item.Value})
	}
	if err := errors.Join(errs...); err != nil {
		return Tree{}, fmt.Errorf("parsing menu: %w", err)
	}
	return tree, nil
}

// LoadTree reads and parses a JSONC menu file.
func LoadTree(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tree{}, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := ParseTree(data)
	if err != nil {
		return Tree{}, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
