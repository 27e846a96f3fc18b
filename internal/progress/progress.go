// Package progress derives today's hydration progress and the motivational
// stage shown alongside the mascot.
package progress

// Progress is the derived view of today's intake against the active goal.
// Percent is deliberately uncapped: values past 100 drive the celebration
// stages.
type Progress struct {
	GoalML      int
	TotalML     int
	RemainingML int
	Percent     float64
}

// Compute floors the goal at 1 so an unset goal can never divide by zero.
func Compute(goalML, totalML int) Progress {
	if goalML < 1 {
		goalML = 1
	}
	remaining := goalML - totalML
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		GoalML:      goalML,
		TotalML:     totalML,
		RemainingML: remaining,
		Percent:     float64(totalML) / float64(goalML) * 100,
	}
}

func (p Progress) Stage() Stage {
	return StageFor(p.Percent)
}

type Stage int

const (
	StageStart Stage = iota
	StageGoodStart
	StageHalfway
	StageAlmostThere
	StageGoalDone
	StageCrossed
)

func StageFor(percent float64) Stage {
	switch {
	case percent <= 0:
		return StageStart
	case percent < 50:
		return StageGoodStart
	case percent < 75:
		return StageHalfway
	case percent < 100:
		return StageAlmostThere
	case percent < 150:
		return StageGoalDone
	default:
		return StageCrossed
	}
}

// Message returns the status line the original app showed for each stage.
func (s Stage) Message() string {
	switch s {
	case StageStart:
		return "Start with one glass of water!"
	case StageGoodStart:
		return "Good start! Keep sipping through the day."
	case StageHalfway:
		return "Nice! You're more than halfway there."
	case StageAlmostThere:
		return "Almost there! A few more sips to reach your goal."
	case StageGoalDone:
		return "Goal completed! Great job staying hydrated!"
	default:
		return "Wow, you crossed your goal! Stay balanced."
	}
}

type Pose int

const (
	PoseNeutral Pose = iota
	PoseHappy
	PoseWave
	PoseCelebrate
)

func (s Stage) Pose() Pose {
	switch s {
	case StageStart, StageGoodStart:
		return PoseNeutral
	case StageHalfway:
		return PoseHappy
	case StageAlmostThere:
		return PoseWave
	default:
		return PoseCelebrate
	}
}

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageGoodStart:
		return "good_start"
	case StageHalfway:
		return "halfway"
	case StageAlmostThere:
		return "almost_there"
	case StageGoalDone:
		return "goal_completed"
	default:
		return "crossed_goal"
	}
}

func (p Pose) String() string {
	switch p {
	case PoseNeutral:
		return "neutral"
	case PoseHappy:
		return "happy"
	case PoseWave:
		return "wave"
	default:
		return "celebrate"
	}
}
