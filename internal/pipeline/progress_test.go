package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReporter_EmitAndSubscribe(t *testing.T) {
	pr := NewProgressReporter()
	defer pr.Close()

	pr.Emit(ProgressEvent{State: StateOutlining, Status: ProgressWorking})

	ev := <-pr.Subscribe()
	assert.Equal(t, StateOutlining, ev.State)
	assert.Equal(t, ProgressWorking, ev.Status)
}

func TestProgressReporter_DropsWhenFull(t *testing.T) {
	pr := NewProgressReporter()
	defer pr.Close()

	// Channel buffer is 64; emitting more must not block.
	for i := 0; i < 200; i++ {
		pr.Emit(ProgressEvent{State: StateDrafting, Status: ProgressPending})
	}

	drained := 0
	for {
		select {
		case <-pr.Subscribe():
			drained++
		default:
			require.Equal(t, 64, drained)
			return
		}
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		event ProgressEvent
		want  string
	}{
		{ProgressEvent{State: StateDrafting, Section: "intro", Status: ProgressWorking}, "  ● intro..."},
		{ProgressEvent{State: StateDrafting, Section: "intro", Status: ProgressComplete}, "  ✓ intro complete"},
		{ProgressEvent{State: StateFailed, Status: ProgressFailed, Message: "boom"}, "  ✗ failed failed: boom"},
		{ProgressEvent{State: StateOutlining, Status: ProgressPending}, "  ○ outlining (pending)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatProgress(tt.event))
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "researching", StateResearching.String())
	assert.Equal(t, "voice-auditing", StateVoiceAuditing.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(99).String())
}
