package asn1

// Parse decodes the single top-level BER value at the front of data.
// Any bytes remaining after that value is fully consumed are rejected
// as trailing bytes — callers that expect concatenated top-level
// values (e.g. a SET of SecurityInfo) must slice and call Parse once
// per element themselves.
func Parse(data []byte) (*Node, error) {
	node, n, err := parseValue(data, 0)
	if err != nil {
		return nil, err
	}

	if n != len(data) {
		return nil, ErrTrailingBytes
	}

	return node, nil
}

// ParsePrefix decodes the single top-level BER value at the front of
// data and returns it along with the number of bytes consumed,
// without rejecting trailing bytes.
func ParsePrefix(data []byte) (*Node, int, error) {
	return parseValue(data, 0)
}

// ParseAll decodes a run of concatenated top-level BER values, such
// as the DO'87'/DO'97'/DO'8E' data objects making up a protected
// command body. It is parseChildren with depth reset to the top
// level.
func ParseAll(data []byte) ([]*Node, error) {
	return parseChildren(data, 0)
}

// FirstWithByteTag searches a flat slice of nodes (as returned by
// ParseAll) for one whose single-byte encoded identifier octet is raw.
func FirstWithByteTag(nodes []*Node, raw byte) *Node {
	for _, n := range nodes {
		b := n.Tag.Bytes()
		if len(b) == 1 && b[0] == raw {
			return n
		}
	}
	return nil
}

func parseValue(data []byte, depth int) (*Node, int, error) {
	if depth >= maxDepth {
		return nil, 0, ErrExcessiveDepth
	}

	tag, tn, err := decodeTag(data)
	if err != nil {
		return nil, 0, err
	}

	length, ln, err := decodeLength(data[tn:])
	if err != nil {
		return nil, 0, err
	}

	headerLen := tn + ln
	if headerLen+length > len(data) {
		return nil, 0, ErrTruncated
	}

	content := data[headerLen : headerLen+length]
	total := headerLen + length

	node := &Node{
		Tag:     tag,
		Content: content,
		Raw:     data[:total],
	}

	if tag.Constructed {
		children, err := parseChildren(content, depth+1)
		if err != nil {
			return nil, 0, err
		}
		node.Children = children
	}

	return node, total, nil
}

func parseChildren(data []byte, depth int) ([]*Node, error) {
	children := make([]*Node, 0)

	for len(data) > 0 {
		child, n, err := parseValue(data, depth)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
		data = data[n:]
	}

	return children, nil
}

// decodeLength reads a BER definite length from the front of b and
// returns the decoded value plus the number of octets consumed.
// Indefinite lengths and non-minimal long-form encodings are rejected.
func decodeLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}

	first := b[0]

	if first < 0x80 {
		return int(first), 1, nil
	}

	if first == 0x80 {
		return 0, 0, ErrIndefiniteLength
	}

	count := int(first & 0x7F)
	if count == 0 || len(b) < 1+count {
		return 0, 0, ErrTruncated
	}

	lengthBytes := b[1 : 1+count]

	if lengthBytes[0] == 0x00 {
		// A leading zero octet in a multi-octet length is never
		// minimal: it can always be dropped.
		return 0, 0, ErrNonMinimalLength
	}

	length := 0
	for _, lb := range lengthBytes {
		length = length<<8 | int(lb)
	}

	if length < 0x80 {
		// Would have fit in the short form.
		return 0, 0, ErrNonMinimalLength
	}

	return length, 1 + count, nil
}
