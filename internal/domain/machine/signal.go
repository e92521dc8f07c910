package machine

// Signal is the column name of a binary machine indicator.
type Signal string

// Automatic mode signals.
const (
	SignalAlarm Signal = "ATMD_ALARM"
	SignalMem   Signal = "ATMD_MEM"
	SignalTape  Signal = "ATMD_TAPE"
	SignalMDI   Signal = "ATMD_MDI"
	SignalNA3   Signal = "ATMD_NA.3"
)

// Manual mode signals.
const (
	SignalRet  Signal = "MNMD_RET"
	SignalPTP  Signal = "MNMD_PTP"
	SignalStep Signal = "MNMD_STEP"
	SignalHand Signal = "MNMD_HAND"
	SignalJog  Signal = "MNMD_JOG"
)

// Status signals.
const (
	SignalDen2 Signal = "SGNL_DEN2"
	SignalSMZ  Signal = "SGNL_SMZ"
	SignalINP  Signal = "SGNL_INP"
	SignalAFC  Signal = "SGNL_AFC"
	SignalCut  Signal = "SGNL_CUT"
	SignalCXF  Signal = "SGNL_CXF"
	SignalSTL  Signal = "SGNL_STL"
	SignalOP   Signal = "SGNL_OP"
)

// vocabulary lists every signal a Row must carry, in column order of the day files.
//
//nolint:gochecknoglobals // Fixed vocabulary, never mutated.
var vocabulary = []Signal{
	SignalAlarm, SignalMem, SignalTape, SignalMDI, SignalNA3,
	SignalRet, SignalPTP, SignalStep, SignalHand, SignalJog,
	SignalDen2, SignalSMZ, SignalINP, SignalAFC, SignalCut, SignalCXF, SignalSTL, SignalOP,
}

// Signals returns the required signal vocabulary.
func Signals() []Signal {
	result := make([]Signal, len(vocabulary))
	copy(result, vocabulary)

	return result
}

// String returns the column name of the signal.
func (s Signal) String() string {
	return string(s)
}

// IsKnown reports whether the signal belongs to the required vocabulary.
func (s Signal) IsKnown() bool {
	for _, known := range vocabulary {
		if s == known {
			return true
		}
	}

	return false
}
