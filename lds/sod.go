package lds

import (
	"github.com/pkg/errors"
	"github.com/skythen/emrtd/asn1"
	"github.com/skythen/emrtd/cms"
	"github.com/skythen/emrtd/xcrypto"
)

// SOD is the decoded content of EF.SOD: the embedded CMS SignedData
// structure (left unverified here, for the Passive Authentication
// verifier to check) plus the LDSSecurityObject it encapsulates -
// the declared digest algorithm and the expected hash of every Data
// Group the issuer signed.
type SOD struct {
	SignedData      *cms.SignedData
	DigestAlgorithm xcrypto.HashAlgorithm
	DataGroupHashes map[Tag][]byte
}

// DecodeSOD parses raw EF.SOD bytes (the 0x77-tagged TLV wrapping a
// CMS ContentInfo) and the LDSSecurityObject signed inside it. It does
// not verify the signature; pass SignedData to cms.Verify for that.
func DecodeSOD(raw []byte) (*SOD, error) {
	node, err := asn1.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse EF.SOD")
	}
	if node.Tag.Bytes()[0] != berTagByDG[TagSOD] {
		return nil, ErrUnexpectedBERTag
	}

	signedData, err := cms.ParseSignedData(node.Content)
	if err != nil {
		return nil, errors.Wrap(err, "parse EF.SOD SignedData")
	}

	ldsSecurityObject := cms.EncapsulatedContent(signedData)

	digestAlgorithm, hashes, err := decodeLDSSecurityObject(ldsSecurityObject)
	if err != nil {
		return nil, errors.Wrap(err, "decode LDSSecurityObject")
	}

	return &SOD{
		SignedData:      signedData,
		DigestAlgorithm: digestAlgorithm,
		DataGroupHashes: hashes,
	}, nil
}

// decodeLDSSecurityObject decodes:
//
//	LDSSecurityObject ::= SEQUENCE {
//	  version             INTEGER,
//	  hashAlgorithm       AlgorithmIdentifier,
//	  dataGroupHashValues SEQUENCE OF DataGroupHash
//	}
//	DataGroupHash ::= SEQUENCE {
//	  dataGroupNumber    INTEGER,
//	  dataGroupHashValue OCTET STRING
//	}
func decodeLDSSecurityObject(raw []byte) (xcrypto.HashAlgorithm, map[Tag][]byte, error) {
	root, err := asn1.Parse(raw)
	if err != nil {
		return 0, nil, err
	}
	if len(root.Children) < 3 {
		return 0, nil, errors.New("lds: malformed LDSSecurityObject")
	}

	hashAlgSeq := root.Children[1]
	if len(hashAlgSeq.Children) < 1 {
		return 0, nil, errors.New("lds: LDSSecurityObject hashAlgorithm is missing its OID")
	}
	oid, err := asn1.ParseObjectIdentifier(hashAlgSeq.Children[0].Content)
	if err != nil {
		return 0, nil, errors.Wrap(err, "parse hashAlgorithm OID")
	}
	digestAlgorithm, err := xcrypto.HashAlgorithmByOID(oid)
	if err != nil {
		return 0, nil, err
	}

	hashes := make(map[Tag][]byte)
	for _, dgHash := range root.Children[2].Children {
		if len(dgHash.Children) < 2 {
			return 0, nil, errors.New("lds: malformed DataGroupHash")
		}
		number := 0
		for _, b := range dgHash.Children[0].Content {
			number = number<<8 | int(b)
		}
		if number < int(TagDG1) || number > int(TagDG16) {
			continue
		}
		hashes[Tag(number)] = dgHash.Children[1].Content
	}

	return digestAlgorithm, hashes, nil
}
