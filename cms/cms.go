// Package cms implements the minimal slice of Cryptographic Message
// Syntax (RFC 5652) this reader needs to verify an eMRTD Security
// Object Document: parsing a PKCS#7/CMS SignedData structure and
// checking its signer's signature over the encapsulated content. It
// does not validate the signer certificate against any trust anchor;
// Document Security Object verification is a signature check only.
package cms

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
)

// ContentInfo is the top-level CMS wrapper (RFC 5652 Section 3).
type ContentInfo struct {
	ContentType asn1.ObjectIdentifier
	Content     asn1.RawValue `asn1:"explicit,tag:0"`
}

// SignedData is the CMS SignedData content type (RFC 5652 Section 5.1).
type SignedData struct {
	Version          int
	DigestAlgorithms []pkix.AlgorithmIdentifier `asn1:"set"`
	EncapContentInfo EncapsulatedContentInfo
	Certificates     rawCertificates `asn1:"optional,tag:0"`
	CRLs             []asn1.RawValue `asn1:"optional,set,tag:1"`
	SignerInfos      []SignerInfo    `asn1:"set"`
}

// rawCertificates captures the [0] IMPLICIT certificates field without
// forcing Go's asn1 decoder to interpret its contents.
type rawCertificates struct {
	Raw asn1.RawContent
}

// EncapsulatedContentInfo carries the signed content: for a Security
// Object Document, an OCTET STRING wrapping a DER-encoded
// LDSSecurityObject.
type EncapsulatedContentInfo struct {
	EContentType asn1.ObjectIdentifier
	EContent     asn1.RawValue `asn1:"explicit,optional,tag:0"`
}

// SignerInfo is one signer's contribution to a SignedData (RFC 5652
// Section 5.3).
type SignerInfo struct {
	Version            int
	SID                IssuerAndSerialNumber
	DigestAlgorithm    pkix.AlgorithmIdentifier
	SignedAttrs        []Attribute `asn1:"optional,tag:0"`
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Signature          []byte
	UnsignedAttrs      []Attribute `asn1:"optional,tag:1"`
}

// IssuerAndSerialNumber identifies a certificate by issuer name and
// serial number.
type IssuerAndSerialNumber struct {
	Issuer       asn1.RawValue
	SerialNumber *big.Int
}

// Attribute is a CMS signed or unsigned attribute.
type Attribute struct {
	Type   asn1.ObjectIdentifier
	Values []asn1.RawValue `asn1:"set"`
}

// OIDSignedData identifies the CMS SignedData content type.
var OIDSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}

// OIDMessageDigest and OIDContentType identify the two standard signed
// attributes of a SignerInfo in the signed-attributes form (the form
// every SOD observed in the wild uses). Verify checks messageDigest;
// the content-type attribute is not checked.
var (
	OIDContentType   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 3}
	OIDMessageDigest = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 4}
)
