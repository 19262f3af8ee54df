package pipeline

// State identifies where a run is in the pipeline's state machine. Runs move
// strictly forward; Succeeded and Failed are terminal.
type State int

const (
	StateResearching State = iota
	StateOutlining
	StateDrafting
	StateSEOOptimizing
	StateVoiceAuditing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	names := [...]string{
		"researching",
		"outlining",
		"drafting",
		"seo-optimizing",
		"voice-auditing",
		"succeeded",
		"failed",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Gate names used as keys in Result.Gates.
const (
	GateOutline      = "outline"
	GateCompleteness = "completeness"
	GateSEO          = "seo"
	GateVoiceTone    = "voiceTone"
)
