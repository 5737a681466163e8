package lds

import (
	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
)

// COM is the decoded content of EF.COM: the LDS and Unicode version
// strings, and the set of Data Groups the chip declares present.
type COM struct {
	LDSVersion     string
	UnicodeVersion string
	PresentTags    []Tag
}

// DecodeCOM parses raw EF.COM bytes (the 0x60-tagged TLV).
func DecodeCOM(raw []byte) (*COM, error) {
	node, err := asn1.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse EF.COM")
	}
	if node.Tag.Bytes()[0] != berTagByDG[TagCOM] {
		return nil, ErrUnexpectedBERTag
	}

	com := &COM{}

	if ldsNode := node.FirstChildWithTag(asn1.ClassApplication, 0x01); ldsNode != nil {
		com.LDSVersion = string(ldsNode.Content)
	}
	if uniNode := node.FirstChildWithTag(asn1.ClassApplication, 0x36); uniNode != nil {
		com.UnicodeVersion = string(uniNode.Content)
	}

	tagListNode := node.FirstChildWithByteTag(0x5C)
	if tagListNode == nil {
		return nil, errors.New("lds: EF.COM is missing the tag list")
	}

	for _, b := range tagListNode.Content {
		if tag, ok := TagByBERTag(b); ok {
			com.PresentTags = append(com.PresentTags, tag)
		}
	}

	return com, nil
}
