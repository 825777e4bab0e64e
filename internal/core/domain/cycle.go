package domain

import "time"

// StepStatus is the progress state of one accounting-cycle step.
type StepStatus string

const (
	StepPending    StepStatus = "PENDING"
	StepInProgress StepStatus = "IN_PROGRESS"
	StepCompleted  StepStatus = "COMPLETED"
)

// IsValid reports whether s is a known step status.
func (s StepStatus) IsValid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted:
		return true
	}
	return false
}

// The ten canonical accounting-cycle steps, in order.
const (
	StepAnalyze          = 1
	StepJournalize       = 2
	StepPost             = 3
	StepUnadjustedTB     = 4
	StepAdjust           = 5
	StepAdjustedTB       = 6
	StepStatements       = 7
	StepClose            = 8
	StepPostClosingTB    = 9
	StepScheduleReversal = 10
)

// CycleStepNames maps step numbers to their display names.
var CycleStepNames = map[int]string{
	StepAnalyze:          "Analyze transactions",
	StepJournalize:       "Journalize entries",
	StepPost:             "Post to ledger",
	StepUnadjustedTB:     "Prepare unadjusted trial balance",
	StepAdjust:           "Record adjusting entries",
	StepAdjustedTB:       "Prepare adjusted trial balance",
	StepStatements:       "Prepare financial statements",
	StepClose:            "Record closing entries",
	StepPostClosingTB:    "Prepare post-closing trial balance",
	StepScheduleReversal: "Schedule reversing entries",
}

// CycleStep tracks the progress of one cycle step within a period. Step
// completion is advisory: the engine's own validations are the real gates.
type CycleStep struct {
	PeriodID  string     `json:"periodID"`
	Step      int        `json:"step"` // 1..10
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	Note      string     `json:"note"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
