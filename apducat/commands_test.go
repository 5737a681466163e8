package apducat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectMasterFile(t *testing.T) {
	c := SelectMasterFile()
	require.Equal(t, byte(0xA4), c.Ins)
	require.Equal(t, byte(0x00), c.P1)
	require.Equal(t, byte(0x0C), c.P2)
	require.Equal(t, []byte{0x3F, 0x00}, c.Data)
}

func TestSelectApplication(t *testing.T) {
	c := SelectApplication()
	require.Equal(t, byte(0xA4), c.Ins)
	require.Equal(t, byte(0x04), c.P1)
	require.Equal(t, AID, c.Data)
}

func TestSelectEF(t *testing.T) {
	c := SelectEF([2]byte{0x01, 0x1D})
	require.Equal(t, []byte{0x01, 0x1D}, c.Data)
	require.Equal(t, byte(0x02), c.P1)
}

func TestReadBinaryEncodesBigEndianOffset(t *testing.T) {
	c := ReadBinary(0x0102, 40)
	require.Equal(t, byte(0x01), c.P1)
	require.Equal(t, byte(0x02), c.P2)
	require.Equal(t, 40, c.Ne)
}

func TestGetChallenge(t *testing.T) {
	c := GetChallenge()
	require.Equal(t, byte(0x84), c.Ins)
	require.Equal(t, 8, c.Ne)
}

func TestGeneralAuthenticateChainedSelectsCLA(t *testing.T) {
	chained := GeneralAuthenticateChained([]byte{0x01}, true, 256)
	require.Equal(t, byte(0x10), chained.Cla)

	unchained := GeneralAuthenticateChained([]byte{0x01}, false, 256)
	require.Equal(t, byte(0x00), unchained.Cla)
}

func TestGeneralAuthenticateIsUnchained(t *testing.T) {
	c := GeneralAuthenticate([]byte{0x7C, 0x00}, 256)
	require.Equal(t, byte(0x00), c.Cla)
	require.Equal(t, byte(0x86), c.Ins)
}

func TestMSESetATMutual(t *testing.T) {
	c := MSESetATMutual([]byte{0x80, 0x01, 0x02})
	require.Equal(t, byte(0xC1), c.P1)
	require.Equal(t, byte(0xA4), c.P2)
}

func TestMSESetATInternal(t *testing.T) {
	c := MSESetATInternal([]byte{0x80, 0x01, 0x0A})
	require.Equal(t, byte(0x41), c.P1)
	require.Equal(t, byte(0xA6), c.P2)
}
