package parser

import (
	"iter"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// isExtensionKey reports whether key is a vendor extension ("x-...").
func isExtensionKey(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// deref follows alias nodes to the node they point at.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// maxMergeDepth bounds how deeply merge keys may nest.
const maxMergeDepth = 32

// pairs iterates over the key/value pairs of a mapping node in document
// order. Non-scalar keys are skipped. Merge keys ("<<") are expanded in
// place: keys declared in the mapping itself win over merged ones, and among
// several merged mappings the first to declare a key wins.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		for _, p := range mappingPairs(deref(n), 0) {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}

type pair struct {
	key   string
	value *yaml.Node
}

func mappingPairs(n *yaml.Node, depth int) []pair {
	if n == nil || n.Kind != yaml.MappingNode || depth > maxMergeDepth {
		return nil
	}
	declared := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := deref(n.Content[i]); key.Kind == yaml.ScalarNode && !isMergeKey(key) {
			declared[key.Value] = true
		}
	}

	out := make([]pair, 0, len(n.Content)/2)
	merged := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := deref(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			continue
		}
		value := deref(n.Content[i+1])
		if !isMergeKey(key) {
			out = append(out, pair{key.Value, value})
			continue
		}
		for _, src := range mergeSources(value) {
			for _, p := range mappingPairs(src, depth+1) {
				if declared[p.key] || merged[p.key] {
					continue
				}
				merged[p.key] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// isMergeKey reports whether key is an unquoted "<<".
func isMergeKey(key *yaml.Node) bool {
	if key.Tag == "!!merge" {
		return true
	}
	return key.Value == "<<" && key.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) == 0 &&
		(key.Tag == "" || key.Tag == "!!str")
}

// mergeSources returns the mappings named by a merge value: a single mapping
// (usually an alias) or a sequence of them.
func mergeSources(v *yaml.Node) []*yaml.Node {
	switch {
	case v == nil:
		return nil
	case v.Kind == yaml.MappingNode:
		return []*yaml.Node{v}
	case v.Kind == yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(v.Content))
		for _, item := range v.Content {
			if item = deref(item); item != nil && item.Kind == yaml.MappingNode {
				out = append(out, item)
			}
		}
		return out
	}
	return nil
}

// fields indexes a mapping node by key. Later duplicates win, as they do
// when YAML is decoded into a map.
func fields(n *yaml.Node) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node)
	for k, v := range pairs(n) {
		out[k] = v
	}
	return out
}

// isNull reports whether n is absent or an explicit YAML null.
func isNull(n *yaml.Node) bool {
	n = deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// scalarValue renders a scalar node as a string. Nulls render as "".
func scalarValue(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	if n.Tag == "!!null" {
		return "", true
	}
	return n.Value, true
}

// boolValue parses a scalar boolean node.
func boolValue(n *yaml.Node) (bool, bool) {
	s, ok := scalarValue(n)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}
