package nav

// Stage identifies one state of the navigation pipeline. A run moves
// strictly forward: idle, locating, focusing, injecting, confirming,
// done. Cancellation and structural errors jump straight to done.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageLocating   Stage = "locating"
	StageFocusing   Stage = "focusing"
	StageInjecting  Stage = "injecting"
	StageConfirming Stage = "confirming"
	StageDone       Stage = "done"
)

func (s Stage) String() string { return string(s) }
