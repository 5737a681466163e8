package emrtd

import (
	"testing"

	"github.com/skythen/emrtd/lds"
	"github.com/stretchr/testify/require"
)

func TestStageString(t *testing.T) {
	cases := map[Stage]string{
		StageRequestPresent: "request_present",
		StageAuthenticating: "authenticating",
		StageReading:        "reading",
		StageSuccess:        "success",
		StageError:          "error",
		Stage(99):           "unknown",
	}
	for stage, want := range cases {
		require.Equal(t, want, stage.String())
	}
}

func TestProgressCallbackReportsPercentage(t *testing.T) {
	var gotTag lds.Tag
	var gotPercent int
	cb := progressCallback(lds.TagDG1, func(tag lds.Tag, percent int) {
		gotTag = tag
		gotPercent = percent
	})

	cb(50, 200)

	require.Equal(t, lds.TagDG1, gotTag)
	require.Equal(t, 25, gotPercent)
}

func TestProgressCallbackGuardsZeroTotal(t *testing.T) {
	var gotPercent int
	cb := progressCallback(lds.TagDG2, func(_ lds.Tag, percent int) {
		gotPercent = percent
	})

	cb(0, 0)

	require.Equal(t, 0, gotPercent)
}

func TestNoopStageAndProgressDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		noopStage(StageEvent{Stage: StageSuccess})
		noopProgress(lds.TagDG1, 50)
	})
}
