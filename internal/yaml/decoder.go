package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/config"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	tagNull = "!!null"
	tagStr  = "!!str"
	tagInt  = "!!int"
)

// pair is one key/value entry of a mapping node, in document order.
type pair struct {
	key   *yamlv3.Node
	value *yamlv3.Node
}

// decoder walks a parsed document and collects every structural problem it
// finds instead of stopping at the first.
type decoder struct {
	path     string
	problems []string
}

// readRoot parses the file and returns its top-level node. An empty document
// yields an empty mapping.
func readRoot(path string) (*yamlv3.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, builderr.Wrap(builderr.KindConfig, path, err, "failed to parse YAML file %s", path)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}, nil
	}
	return resolve(doc.Content[0]), nil
}

func resolve(n *yamlv3.Node) *yamlv3.Node {
	for n != nil && n.Kind == yamlv3.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yamlv3.Node) bool {
	return n == nil || (n.Kind == yamlv3.ScalarNode && n.Tag == tagNull)
}

func (d *decoder) problem(n *yamlv3.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", n.Line, msg)
	}
	d.problems = append(d.problems, msg)
}

// err reports the collected problems as one ConfigError.
func (d *decoder) err() error {
	if err := builderr.Config(d.problems); err != nil {
		return fmt.Errorf("%s: %w", d.path, err)
	}
	return nil
}

func describe(n *yamlv3.Node) string {
	switch n.Kind {
	case yamlv3.MappingNode:
		return "map"
	case yamlv3.SequenceNode:
		return "list"
	case yamlv3.ScalarNode:
		return fmt.Sprintf("%s %q", strings.TrimPrefix(n.Tag, "!!"), n.Value)
	default:
		return "node"
	}
}

// pairs returns the entries of a mapping node. It reports a problem and
// returns nil when n is not a mapping.
func (d *decoder) pairs(n *yamlv3.Node, what string) []pair {
	n = resolve(n)
	if n.Kind != yamlv3.MappingNode {
		d.problem(n, "%s must be a map, got %s", what, describe(n))
		return nil
	}
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{key: resolve(n.Content[i]), value: resolve(n.Content[i+1])})
	}
	return out
}

// entries accepts either a map or a list of single-key maps and returns the
// entries in order. Both forms appear for variants and stage variants.
func (d *decoder) entries(n *yamlv3.Node, what string) []pair {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	switch n.Kind {
	case yamlv3.MappingNode:
		return d.pairs(n, what)
	case yamlv3.SequenceNode:
		var out []pair
		for _, item := range n.Content {
			item = resolve(item)
			if item.Kind != yamlv3.MappingNode || len(item.Content) != 2 {
				d.problem(item, "invalid %s item: expected a single-key map, got %s", what, describe(item))
				continue
			}
			out = append(out, pair{key: resolve(item.Content[0]), value: resolve(item.Content[1])})
		}
		return out
	default:
		d.problem(n, "%s must be a map or list, got %s", what, describe(n))
		return nil
	}
}

// key returns the scalar text of a mapping key.
func (d *decoder) key(n *yamlv3.Node, what string) string {
	if n.Kind != yamlv3.ScalarNode {
		d.problem(n, "%s key must be a scalar, got %s", what, describe(n))
		return ""
	}
	return n.Value
}

// str returns a string scalar.
func (d *decoder) str(n *yamlv3.Node, what string) (string, bool) {
	n = resolve(n)
	if n.Kind != yamlv3.ScalarNode || n.Tag != tagStr {
		d.problem(n, "%s must be a string, got %s", what, describe(n))
		return "", false
	}
	return n.Value, true
}

// strList accepts null, a single string, or a list of strings.
func (d *decoder) strList(n *yamlv3.Node, what string) []string {
	n = resolve(n)
	if isNull(n) {
		return nil
	}
	if n.Kind == yamlv3.ScalarNode {
		if s, ok := d.str(n, what); ok {
			return []string{s}
		}
		return nil
	}
	if n.Kind != yamlv3.SequenceNode {
		d.problem(n, "%s must be a string or list of strings, got %s", what, describe(n))
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if s, ok := d.str(item, what+" item"); ok {
			out = append(out, s)
		}
	}
	return out
}

// flags accepts the same shapes as strList and shell-splits every item.
func (d *decoder) flags(n *yamlv3.Node, what string) []string {
	items := d.strList(n, what)
	out, err := config.SplitFlagList(items)
	if err != nil {
		d.problem(n, "%s: %v", what, err)
		return nil
	}
	return out
}

// unknownKey reports a key that is not part of the schema.
func (d *decoder) unknownKey(k *yamlv3.Node, where string, known []string) {
	d.problem(k, "unknown key %q in %s%s", k.Value, where, builderr.Hint(k.Value, known))
}
