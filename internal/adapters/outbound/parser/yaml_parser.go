package parser

import (
	"errors"
	"io"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// YAMLParser implements domain.DocumentValidator using gopkg.in/yaml.v3.
type YAMLParser struct{}

func New() *YAMLParser {
	return &YAMLParser{}
}

// Documents decodes r one document at a time. Each document is decoded
// into a yaml.Node so that syntax is checked without building Go values;
// the duplicate-key policy is applied to the node tree afterwards. Line
// numbers in causes refer to the whole stream.
func (p *YAMLParser) Documents(r io.Reader, allowDuplicateKeys bool) iter.Seq[domain.DocumentResult] {
	return func(yield func(domain.DocumentResult) bool) {
		index := 1
		for c, err := range splitDocuments(r) {
			if err != nil {
				yield(domain.InvalidDocument(index, &domain.ReadError{Err: err}))
				return
			}

			dec := yaml.NewDecoder(strings.NewReader(c.text))
			for {
				var doc yaml.Node
				err := dec.Decode(&doc)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					yield(domain.InvalidDocument(index, &domain.SyntaxError{
						Document: index,
						Message:  shiftLine(strings.TrimPrefix(err.Error(), "yaml: "), c.offset),
					}))
					return
				}

				if !allowDuplicateKeys {
					if dup := findDuplicateKey(&doc); dup != nil {
						dup.Document = index
						dup.Line += c.offset
						dup.FirstLine += c.offset
						yield(domain.InvalidDocument(index, dup))
						return
					}
				}

				if !yield(domain.ValidDocument(index)) {
					return
				}
				index++
			}
		}
	}
}

// findDuplicateKey returns the first repeated mapping key in document order.
// Only scalar keys are compared, on their raw value; this is the scalar
// case of the rule yaml.v3 applies when decoding into maps, which also
// compares mapping and sequence keys. Non-scalar keys are walked for
// duplicates inside them but never compared with each other. Aliases are
// not followed; the anchored node is checked where it is defined.
func findDuplicateKey(n *yaml.Node) *domain.DuplicateKeyError {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range n.Content {
			if dup := findDuplicateKey(child); dup != nil {
				return dup
			}
		}
	case yaml.MappingNode:
		seen := make(map[string]*yaml.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.ScalarNode {
				if first, ok := seen[key.Value]; ok {
					return &domain.DuplicateKeyError{
						Key:       key.Value,
						Line:      key.Line,
						FirstLine: first.Line,
					}
				}
				seen[key.Value] = key
			} else if dup := findDuplicateKey(key); dup != nil {
				return dup
			}
			if dup := findDuplicateKey(value); dup != nil {
				return dup
			}
		}
	}
	return nil
}
