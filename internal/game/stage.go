package game

import (
	"fmt"

	"manor_backend/internal/model"
)

// Stage is one of the four sequential puzzle checkpoints, plus the terminal
// completed marker. The set is closed; restore payloads must carry one of
// these labels verbatim.
type Stage string

const (
	StageRoom1     Stage = "room1" // workshop
	StageRoom2     Stage = "room2" // observatory
	StageRoom3     Stage = "room3" // laboratory
	StageFinal     Stage = "final" // control room
	StageCompleted Stage = "completed"
)

// stageOrder lists the playable stages in their fixed linear order.
var stageOrder = []Stage{StageRoom1, StageRoom2, StageRoom3, StageFinal}

// ParseStage maps a label to its Stage. Unknown labels are rejected rather
// than aliased; callers route on the canonical five labels only.
func ParseStage(label string) (Stage, error) {
	switch Stage(label) {
	case StageRoom1, StageRoom2, StageRoom3, StageFinal, StageCompleted:
		return Stage(label), nil
	}
	return "", fmt.Errorf("unknown stage %q", label)
}

// CurrentStage returns the first stage whose completion flag is unset, or
// StageCompleted once all four are set. Pure function of the flags; used both
// for route gating and for resume-after-restore.
func CurrentStage(s *model.GameSession) Stage {
	switch {
	case !s.Room1Complete:
		return StageRoom1
	case !s.Room2Complete:
		return StageRoom2
	case !s.Room3Complete:
		return StageRoom3
	case !s.FinalComplete:
		return StageFinal
	}
	return StageCompleted
}

// NextStage returns the stage following the given one in the fixed order.
func NextStage(stage Stage) Stage {
	for i, st := range stageOrder {
		if st == stage && i+1 < len(stageOrder) {
			return stageOrder[i+1]
		}
	}
	return StageCompleted
}

// CanAccess reports whether every stage before the requested one has been
// completed. StageCompleted is reachable only when the run is finished.
func CanAccess(s *model.GameSession, stage Stage) bool {
	if stage == StageCompleted {
		return s.FinalComplete
	}
	for _, st := range stageOrder {
		if st == stage {
			return true
		}
		if !flagFor(s, st) {
			return false
		}
	}
	return false
}

func flagFor(s *model.GameSession, stage Stage) bool {
	switch stage {
	case StageRoom1:
		return s.Room1Complete
	case StageRoom2:
		return s.Room2Complete
	case StageRoom3:
		return s.Room3Complete
	case StageFinal:
		return s.FinalComplete
	}
	return false
}
