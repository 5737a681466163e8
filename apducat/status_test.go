package apducat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		name       string
		sw1, sw2   byte
		wantKind   StatusKind
		wantExtra  int
		extraField string
	}{
		{"success", 0x90, 0x00, StatusSuccess, 0, ""},
		{"bytes still available", 0x61, 0x08, StatusBytesStillAvailable, 8, "bytesAvailable"},
		{"wrong length", 0x6C, 0x20, StatusWrongLength, 0x20, "exactLength"},
		{"memory failure", 0x65, 0x81, StatusMemoryFailure, 0, ""},
		{"security status not satisfied", 0x69, 0x82, StatusSecurityStatusNotSatisfied, 0, ""},
		{"file not found", 0x6A, 0x82, StatusFileNotFound, 0, ""},
		{"incorrect SM data object", 0x69, 0x87, StatusIncorrectSMDataObject, 0, ""},
		{"class not supported", 0x6E, 0x00, StatusClassNotSupported, 0, ""},
		{"referenced data invalidated", 0x69, 0x81, StatusReferencedDataInvalidated, 0, ""},
		{"conditions of use not satisfied", 0x69, 0x85, StatusConditionsOfUseNotSatisfied, 0, ""},
		{"other", 0x6F, 0x00, StatusOther, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DecodeStatus(tc.sw1, tc.sw2)
			require.Equal(t, tc.wantKind, s.Kind)

			switch tc.extraField {
			case "bytesAvailable":
				require.Equal(t, tc.wantExtra, s.BytesAvailable)
			case "exactLength":
				require.Equal(t, tc.wantExtra, s.ExactLength)
			}
		})
	}
}

func TestStatusSuccess(t *testing.T) {
	require.True(t, Status{SW1: 0x90, SW2: 0x00}.Success())
	require.False(t, Status{SW1: 0x90, SW2: 0x01}.Success())
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "6A82", Status{SW1: 0x6A, SW2: 0x82}.String())
}
