package interfaces

type ProcessingStatus int

const (
	ProcessingStatusUnknown ProcessingStatus = iota
	ProcessingStatusPending
	ProcessingStatusRunning
	ProcessingStatusCompleted
	ProcessingStatusFailed
	ProcessingStatusSkipped
)

func (s ProcessingStatus) String() string {
	switch s {
	case ProcessingStatusPending:
		return "pending"
	case ProcessingStatusRunning:
		return "running"
	case ProcessingStatusCompleted:
		return "completed"
	case ProcessingStatusFailed:
		return "failed"
	case ProcessingStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func (s ProcessingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ProcessingStatus) UnmarshalText(text []byte) error {
	for status := ProcessingStatusUnknown; status <= ProcessingStatusSkipped; status++ {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}
	*s = ProcessingStatusUnknown
	return nil
}
