package lds

import (
	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
)

// CardAccess is the decoded content of EF.CardAccess: the SecurityInfo
// set a chip advertises before any access-control protocol has run.
// In practice this is PACEInfo entries only, but the same SET shape
// can carry ChipAuthenticationInfo, so this reuses the DG14 decode.
type CardAccess struct {
	PACEInfos []PACEInfoEntry
	CAInfos   []CAInfo
}

// DecodeCardAccess parses raw EF.CardAccess bytes: a bare universal
// SET OF SecurityInfo, unlike EF.DG14 which wraps the same SET in an
// application-class tag.
func DecodeCardAccess(raw []byte) (*CardAccess, error) {
	node, err := asn1.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse EF.CardAccess")
	}
	if !node.Tag.IsUniversal(asn1.TagSet) {
		return nil, ErrUnexpectedBERTag
	}

	infos, err := decodeSecurityInfos(node.Children)
	if err != nil {
		return nil, err
	}

	return &CardAccess{PACEInfos: infos.PACEInfos, CAInfos: infos.CAInfos}, nil
}
