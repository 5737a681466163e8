package params

import (
	"testing"

	"github.com/skythen/emrtd/asn1"
	"github.com/stretchr/testify/require"
)

func TestCurveByOIDResolvesNISTCurves(t *testing.T) {
	g, ok := CurveByOID(asn1.NewObjectIdentifier(1, 2, 840, 10045, 3, 1, 7))
	require.True(t, ok)
	require.Equal(t, 256, g.Curve.Params().BitSize)
}

func TestCurveByOIDResolvesBrainpoolCurves(t *testing.T) {
	g, ok := CurveByOID(asn1.NewObjectIdentifier(1, 3, 36, 3, 3, 2, 8, 1, 1, 7))
	require.True(t, ok)
	require.Equal(t, 256, g.Curve.Params().BitSize)
}

func TestCurveByOIDRejectsUnknownOID(t *testing.T) {
	_, ok := CurveByOID(asn1.NewObjectIdentifier(1, 2, 3, 4))
	require.False(t, ok)
}
