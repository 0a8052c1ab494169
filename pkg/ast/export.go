package ast

// Export converts the subtree rooted at id into the externally visible
// structure: a "type" discriminator, the variant fields, and "children" only
// when non-empty. Parent links are not part of the output. The result is
// made of maps and slices so that encoders emit keys in sorted order.
func (tree *Tree) Export(id NodeID) map[string]any {
	out := make(map[string]any)
	payload := tree.Payload(id)
	payload.fields(out)
	if typeName := payload.Kind().TypeName(); typeName != "" {
		out["type"] = typeName
	}

	children := tree.Children(id)
	if len(children) > 0 {
		exportedChildren := make([]any, 0, len(children))
		for _, child := range children {
			exportedChildren = append(exportedChildren, tree.Export(child))
		}
		out["children"] = exportedChildren
	}
	return out
}
