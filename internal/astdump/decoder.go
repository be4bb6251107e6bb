package astdump

// Decode parses a complete AST dump into its root SwiftAST node.
// Structural mismatches return a *ParseError carrying the unconsumed
// buffer; no partial tree is returned on failure.
func Decode(contents string) (*SwiftAST, error) {
	reader := NewReader(contents)
	root, err := decodeNode(reader)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func decodeNode(r *Reader) (*SwiftAST, error) {
	if err := r.ReadOpenParenthesis(); err != nil {
		return nil, err
	}

	name := r.ReadIdentifier()
	if name == "" {
		return nil, r.errorf("expected node name")
	}
	node := NewSwiftAST(expandName(name))

	for !r.CanReadCloseParenthesis() {
		if r.IsAtEnd() {
			return nil, r.errorf("unterminated node %q", node.Name)
		}

		if r.CanReadOpenParenthesis() {
			subtree, err := decodeNode(r)
			if err != nil {
				return nil, err
			}
			node.Subtrees = append(node.Subtrees, subtree)
			continue
		}

		if key, ok := r.ReadKey(); ok {
			value, err := decodeValue(r, key)
			if err != nil {
				return nil, err
			}
			node.KeyValueAttributes[key] = value
			continue
		}

		attribute, err := r.ReadStandaloneAttribute()
		if err != nil {
			return nil, err
		}
		if attribute == "" {
			return nil, r.errorf("expected attribute in node %q", node.Name)
		}
		node.StandaloneAttributes = append(node.StandaloneAttributes, attribute)
	}

	if err := r.ReadCloseParenthesis(); err != nil {
		return nil, err
	}
	return node, nil
}

// decodeValue reads the value half of a key=value attribute. The location
// key takes the dedicated path:line:column reader; everything else reads as
// a standalone token, whose own dispatch recognizes locations.
func decodeValue(r *Reader, key string) (string, error) {
	if key == "location" {
		return r.ReadLocation()
	}
	return r.ReadStandaloneAttribute()
}
