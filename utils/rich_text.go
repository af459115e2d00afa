package utils

import "strings"

// RichTextNode is the closed set of rich text shapes: a text leaf or a
// container holding child nodes.
type RichTextNode interface {
	isRichTextNode()
}

// TextLeaf is a node carrying literal text
type TextLeaf struct {
	Value string
}

// RichTextContainer is a document, paragraph, list or any other node with children
type RichTextContainer struct {
	NodeType string
	Content  []RichTextNode
}

func (TextLeaf) isRichTextNode()          {}
func (RichTextContainer) isRichTextNode() {}

// ParseRichText converts a decoded JSON value into a RichTextNode.
// Strings become leaves; maps with a string "value" become leaves; maps and
// arrays with children become containers. Everything else is nil.
func ParseRichText(raw any) RichTextNode {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return TextLeaf{Value: v}
	case []any:
		return RichTextContainer{Content: parseChildren(v)}
	case map[string]any:
		nodeType, _ := v["nodeType"].(string)
		if value, ok := v["value"].(string); ok && (nodeType == "text" || v["content"] == nil) {
			return TextLeaf{Value: value}
		}
		children, _ := v["content"].([]any)
		return RichTextContainer{NodeType: nodeType, Content: parseChildren(children)}
	default:
		return nil
	}
}

func parseChildren(items []any) []RichTextNode {
	nodes := make([]RichTextNode, 0, len(items))
	for _, item := range items {
		if node := ParseRichText(item); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Flatten concatenates every leaf value in document order
func Flatten(node RichTextNode) string {
	var b strings.Builder
	writeLeaves(&b, node)
	return b.String()
}

func writeLeaves(b *strings.Builder, node RichTextNode) {
	switch n := node.(type) {
	case TextLeaf:
		b.WriteString(n.Value)
	case RichTextContainer:
		for _, child := range n.Content {
			writeLeaves(b, child)
		}
	}
}

// FlattenRichText flattens a raw remote rich text value to plain text.
// A plain string returns itself and nil returns "".
func FlattenRichText(raw any) string {
	return Flatten(ParseRichText(raw))
}
