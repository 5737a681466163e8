package cms

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"crypto/x509"
	"encoding/asn1"

	"github.com/pkg/errors"
)

// VerifyResult is what a successful Verify reveals about a SignedData:
// the certificate that produced the signature and the content it
// signed.
type VerifyResult struct {
	SignerCert  *x509.Certificate
	Content     []byte
	ContentType asn1.ObjectIdentifier
}

// ParseSignedData decodes a ContentInfo wrapping a SignedData, the
// shape every EF.SOD uses.
func ParseSignedData(der []byte) (*SignedData, error) {
	var info ContentInfo
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return nil, errors.Wrap(err, "cms: parse ContentInfo")
	}
	if !info.ContentType.Equal(OIDSignedData) {
		return nil, errors.Errorf("cms: content type %s is not SignedData", info.ContentType)
	}

	var sd SignedData
	if _, err := asn1.Unmarshal(info.Content.Bytes, &sd); err != nil {
		return nil, errors.Wrap(err, "cms: parse SignedData")
	}
	return &sd, nil
}

// Verify checks a SignedData's signature over its encapsulated
// content. It deliberately does not validate the signer certificate
// against any trust anchor: the signer certificate's authenticity is
// a document-issuer PKI question out of scope for this verifier, and
// callers that need it should check the returned SignerCert
// themselves against a Country Signing CA pool.
func Verify(sd *SignedData) (*VerifyResult, error) {
	if len(sd.SignerInfos) == 0 {
		return nil, errors.New("cms: SignedData has no SignerInfo")
	}

	cert, err := extractSignerCert(sd)
	if err != nil {
		return nil, err
	}

	signer := sd.SignerInfos[0]
	content := encapsulatedContent(sd)

	if err := verifySignerInfo(&signer, cert, content); err != nil {
		return nil, err
	}

	return &VerifyResult{
		SignerCert:  cert,
		Content:     content,
		ContentType: sd.EncapContentInfo.EContentType,
	}, nil
}

// EncapsulatedContent returns the content SignedData's SignerInfo
// signs: the OCTET STRING payload of encapContentInfo, unwrapped from
// whatever BER form the signer chose to encode it in.
func EncapsulatedContent(sd *SignedData) []byte {
	return encapsulatedContent(sd)
}

func encapsulatedContent(sd *SignedData) []byte {
	ec := sd.EncapContentInfo.EContent
	if ec.Tag == asn1.TagOctetString {
		return ec.Bytes
	}

	var octets []byte
	if _, err := asn1.Unmarshal(ec.Bytes, &octets); err == nil {
		return octets
	}
	return ec.Bytes
}

func extractSignerCert(sd *SignedData) (*x509.Certificate, error) {
	if len(sd.Certificates.Raw) == 0 {
		return nil, errors.New("cms: SignedData carries no certificates")
	}

	// Certificates.Raw is the [0] IMPLICIT-tagged outer TLV; unwrap it
	// to get at the SEQUENCE OF Certificate it wraps.
	var wrapper asn1.RawValue
	if _, err := asn1.Unmarshal(sd.Certificates.Raw, &wrapper); err != nil {
		return nil, errors.Wrap(err, "cms: unwrap certificate set")
	}

	certs, err := parseCertificates(wrapper.Bytes)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

func parseCertificates(raw []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for len(raw) > 0 {
		var tlv asn1.RawValue
		rest, err := asn1.Unmarshal(raw, &tlv)
		if err != nil {
			return nil, errors.Wrap(err, "cms: parse embedded certificate")
		}
		cert, err := x509.ParseCertificate(tlv.FullBytes)
		if err != nil {
			return nil, errors.Wrap(err, "cms: parse embedded certificate")
		}
		certs = append(certs, cert)
		raw = rest
	}
	if len(certs) == 0 {
		return nil, errors.New("cms: no certificates found in SignedData")
	}
	return certs, nil
}

func verifySignerInfo(signer *SignerInfo, cert *x509.Certificate, content []byte) error {
	hashAlg, err := hashForOID(signer.DigestAlgorithm.Algorithm)
	if err != nil {
		return err
	}

	signedOver := content

	if len(signer.SignedAttrs) > 0 {
		digest := digestBytes(content, hashAlg)

		md, err := messageDigestAttr(signer.SignedAttrs)
		if err != nil {
			return err
		}
		if !bytes.Equal(md, digest) {
			return errors.New("cms: signed message-digest attribute does not match content digest")
		}

		signedOver, err = marshalSignedAttrsForVerification(signer.SignedAttrs)
		if err != nil {
			return err
		}
	}

	return verifySignatureBytes(signedOver, signer.Signature, cert, hashAlg)
}

func messageDigestAttr(attrs []Attribute) ([]byte, error) {
	for _, attr := range attrs {
		if !attr.Type.Equal(OIDMessageDigest) || len(attr.Values) == 0 {
			continue
		}
		var md []byte
		if _, err := asn1.Unmarshal(attr.Values[0].FullBytes, &md); err != nil {
			return nil, errors.Wrap(err, "cms: parse message-digest attribute")
		}
		return md, nil
	}
	return nil, errors.New("cms: SignerInfo has signed attributes but no message-digest attribute")
}

// marshalSignedAttrsForVerification re-encodes the signedAttrs as the
// SET OF that was actually signed. DER requires SET OF members sorted
// by their encoding, which is how the signer produced them in the
// first place.
func marshalSignedAttrsForVerification(attrs []Attribute) ([]byte, error) {
	encoded := make([][]byte, len(attrs))
	for i, a := range attrs {
		enc, err := asn1.Marshal(a)
		if err != nil {
			return nil, errors.Wrap(err, "cms: marshal signed attribute")
		}
		encoded[i] = enc
	}

	total := 0
	for _, e := range encoded {
		total += len(e)
	}
	for i := 1; i < len(encoded); i++ {
		for j := i; j > 0 && bytes.Compare(encoded[j-1], encoded[j]) > 0; j-- {
			encoded[j-1], encoded[j] = encoded[j], encoded[j-1]
		}
	}

	out := make([]byte, 0, total+4)
	out = append(out, 0x31) // SET tag
	out = append(out, encodeLength(total)...)
	for _, e := range encoded {
		out = append(out, e...)
	}
	return out, nil
}

func encodeLength(n int) []byte {
	switch {
	case n < 0x80:
		return []byte{byte(n)}
	case n < 0x100:
		return []byte{0x81, byte(n)}
	default:
		return []byte{0x82, byte(n >> 8), byte(n)}
	}
}

func verifySignatureBytes(data, signature []byte, cert *x509.Certificate, hashAlg crypto.Hash) error {
	digest := digestBytes(data, hashAlg)

	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(pub, hashAlg, digest, signature); err != nil {
			return errors.Wrap(err, "cms: RSA signature verification failed")
		}
		return nil
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(pub, digest, signature) {
			return errors.New("cms: ECDSA signature verification failed")
		}
		return nil
	default:
		return errors.Errorf("cms: unsupported signer public key type %T", pub)
	}
}

func digestBytes(data []byte, h crypto.Hash) []byte {
	d := h.New()
	d.Write(data)
	return d.Sum(nil)
}

func hashForOID(oid asn1.ObjectIdentifier) (crypto.Hash, error) {
	switch {
	case oid.Equal(asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}):
		return crypto.SHA1, nil
	case oid.Equal(asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 4}):
		return crypto.SHA224, nil
	case oid.Equal(asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}):
		return crypto.SHA256, nil
	case oid.Equal(asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}):
		return crypto.SHA384, nil
	case oid.Equal(asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}):
		return crypto.SHA512, nil
	default:
		return 0, errors.Errorf("cms: unsupported digest algorithm OID %s", oid)
	}
}
