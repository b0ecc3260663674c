package domain

// StageStatus represents the execution state of a production stage.
type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
)

func (s StageStatus) String() string {
	return string(s)
}

func (s StageStatus) IsCompleted() bool {
	return s == StageCompleted
}

func (s StageStatus) Valid() bool {
	switch s {
	case StagePending, StageInProgress, StageCompleted:
		return true
	}
	return false
}
