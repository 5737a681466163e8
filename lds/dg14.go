package lds

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/params"
	"github.com/skythen/emrtd/xcrypto"
)

// DG14 is the decoded content of EF.DG14: the SET of SecurityInfo
// entries a chip advertises for Chip Authentication and PACE. Every
// matching ChipAuthenticationInfo entry is collected (a chip may
// publish more than one, disambiguated later by keyId), not just the
// first.
type DG14 struct {
	PublicKeys []PublicKeyInfo
	CAInfos    []CAInfo
	PACEInfos  []PACEInfoEntry
}

// PublicKeyInfo is a decoded ChipAuthenticationPublicKeyInfo: the
// chip's static CA key and, if present, the keyId disambiguating it
// from any sibling key.
type PublicKeyInfo struct {
	KeyAgreement params.KeyAgreement
	DH           xcrypto.DHDomain
	DHPub        *big.Int
	CurveOID     asn1.ObjectIdentifier
	ECPub        xcrypto.ECPoint
	HasKeyID     bool
	KeyID        int64
}

// CAInfo is a decoded ChipAuthenticationInfo: the protocol OID and
// the keyId it applies to, if any.
type CAInfo struct {
	Algorithm params.CAAlgorithm
	HasKeyID  bool
	KeyID     int64
}

// PACEInfoEntry is a decoded PACEInfo: protocol OID, parameter-id,
// and the mandatory version field.
type PACEInfoEntry struct {
	OID         asn1.ObjectIdentifier
	ParameterID int
	Version     int
}

// DecodeDG14 parses raw EF.DG14 bytes (the 0x6E-tagged SET).
func DecodeDG14(raw []byte) (*DG14, error) {
	node, err := asn1.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse EF.DG14")
	}
	if node.Tag.Bytes()[0] != berTagByDG[TagDG14] {
		return nil, ErrUnexpectedBERTag
	}

	return decodeSecurityInfos(node.Children)
}

// decodeSecurityInfos classifies each member of a SecurityInfos SET by
// its leading protocol OID's registered prefix, shared between EF.DG14
// (wrapped in the 0x6E application tag) and EF.CardAccess (a bare
// universal SET).
func decodeSecurityInfos(members []*asn1.Node) (*DG14, error) {
	dg14 := &DG14{}

	for _, member := range members {
		oidNode := member.FirstChildWithTag(asn1.ClassUniversal, asn1.TagObjectIdentifier)
		if oidNode == nil {
			continue
		}
		oid, err := asn1.ParseObjectIdentifier(oidNode.Content)
		if err != nil {
			continue
		}

		switch {
		case params.IsPKInfoOID(oid):
			info, err := decodePublicKeyInfo(oid, member)
			if err != nil {
				return nil, errors.Wrap(err, "decode ChipAuthenticationPublicKeyInfo")
			}
			dg14.PublicKeys = append(dg14.PublicKeys, info)

		case params.IsCAInfoOID(oid):
			algo, err := params.ResolveCAOID(oid)
			if err != nil {
				return nil, errors.Wrap(err, "decode ChipAuthenticationInfo")
			}
			entry := CAInfo{Algorithm: algo}
			if len(member.Children) >= 3 {
				if kid := member.Children[len(member.Children)-1]; kid.Tag.IsUniversal(asn1.TagInteger) {
					entry.HasKeyID = true
					entry.KeyID = new(big.Int).SetBytes(kid.Content).Int64()
				}
			}
			dg14.CAInfos = append(dg14.CAInfos, entry)

		case params.IsPACEInfoOID(oid):
			entry, err := decodePACEInfo(oid, member)
			if err != nil {
				return nil, errors.Wrap(err, "decode PACEInfo")
			}
			dg14.PACEInfos = append(dg14.PACEInfos, entry)
		}
	}

	return dg14, nil
}

func decodePACEInfo(oid asn1.ObjectIdentifier, member *asn1.Node) (PACEInfoEntry, error) {
	if len(member.Children) < 2 {
		return PACEInfoEntry{}, errors.New("lds: malformed PACEInfo")
	}

	entry := PACEInfoEntry{OID: oid}
	entry.Version = int(new(big.Int).SetBytes(member.Children[1].Content).Int64())

	if len(member.Children) >= 3 {
		entry.ParameterID = int(new(big.Int).SetBytes(member.Children[2].Content).Int64())
	}

	return entry, nil
}

// decodePublicKeyInfo decodes a ChipAuthenticationPublicKeyInfo's
// SubjectPublicKeyInfo. DH keys carry explicit domain parameters
// (p, g, q) alongside the public value; ECDH keys carry a named-curve
// OID and the uncompressed point directly as the BIT STRING payload.
func decodePublicKeyInfo(protocolOID asn1.ObjectIdentifier, member *asn1.Node) (PublicKeyInfo, error) {
	if len(member.Children) < 2 {
		return PublicKeyInfo{}, errors.New("lds: malformed ChipAuthenticationPublicKeyInfo")
	}

	ka, err := params.ResolvePKOID(protocolOID)
	if err != nil {
		return PublicKeyInfo{}, err
	}

	spki := member.Children[1]
	if len(spki.Children) < 2 {
		return PublicKeyInfo{}, errors.New("lds: malformed SubjectPublicKeyInfo")
	}

	algorithm := spki.Children[0]
	bitString := spki.Children[1]
	if len(bitString.Content) < 1 {
		return PublicKeyInfo{}, errors.New("lds: empty SubjectPublicKey")
	}
	keyBytes := bitString.Content[1:] // skip the unused-bits count octet

	info := PublicKeyInfo{KeyAgreement: ka}

	if len(member.Children) >= 3 {
		kid := member.Children[2]
		if kid.Tag.IsUniversal(asn1.TagInteger) {
			info.HasKeyID = true
			info.KeyID = new(big.Int).SetBytes(kid.Content).Int64()
		}
	}

	switch ka {
	case params.KeyAgreementDH:
		if len(algorithm.Children) < 2 {
			return PublicKeyInfo{}, errors.New("lds: DH SubjectPublicKeyInfo is missing domain parameters")
		}
		domainParams := algorithm.Children[1]
		if len(domainParams.Children) < 2 {
			return PublicKeyInfo{}, errors.New("lds: malformed DH domain parameters")
		}
		p := new(big.Int).SetBytes(domainParams.Children[0].Content)
		g := new(big.Int).SetBytes(domainParams.Children[1].Content)
		var q *big.Int
		if len(domainParams.Children) >= 3 {
			q = new(big.Int).SetBytes(domainParams.Children[2].Content)
		}
		info.DH = xcrypto.DHDomain{P: p, Q: q, G: g}

		pubNode, err := asn1.Parse(keyBytes)
		if err != nil {
			return PublicKeyInfo{}, errors.Wrap(err, "parse DH public value")
		}
		info.DHPub = new(big.Int).SetBytes(pubNode.Content)

	case params.KeyAgreementECDH:
		if len(algorithm.Children) < 2 {
			return PublicKeyInfo{}, errors.New("lds: EC SubjectPublicKeyInfo is missing a named curve")
		}
		curveOIDNode := algorithm.Children[1]
		curveOID, err := asn1.ParseObjectIdentifier(curveOIDNode.Content)
		if err != nil {
			return PublicKeyInfo{}, errors.Wrap(err, "parse named curve OID")
		}
		info.CurveOID = curveOID

		group, ok := params.CurveByOID(curveOID)
		if !ok {
			return PublicKeyInfo{}, errors.Errorf("lds: unregistered named curve %s", curveOID)
		}
		pt, err := xcrypto.DecodeUncompressedPoint(group.Curve, keyBytes)
		if err != nil {
			return PublicKeyInfo{}, errors.Wrap(err, "decode EC public point")
		}
		info.ECPub = pt
	}

	return info, nil
}
