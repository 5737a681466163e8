package emrtd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProtocolStatusString(t *testing.T) {
	cases := map[ProtocolStatus]string{
		StatusNotAttempted: "not_attempted",
		StatusSuccess:      "success",
		StatusFailed:       "failed",
		StatusNotSupported: "not_supported",
		ProtocolStatus(99): "unknown",
	}
	for status, want := range cases {
		require.Equal(t, want, status.String())
	}
}
