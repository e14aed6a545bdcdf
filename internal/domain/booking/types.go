package booking

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusReserved  Status = "RESERVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusOngoing   Status = "ONGOING"
	StatusEnded     Status = "ENDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusReserved, StatusRejected, StatusCancelled, StatusOngoing, StatusEnded:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// AutoAdvanceStatuses are the statuses the midnight batch looks at.
var AutoAdvanceStatuses = []Status{StatusReserved, StatusOngoing}

// Trigger names who or what asked for a transition.
type Trigger string

const (
	TriggerHostApprove Trigger = "host_approve"
	TriggerHostReject  Trigger = "host_reject"
	TriggerCancel      Trigger = "cancel"
	TriggerCheckIn     Trigger = "check_in"
	TriggerCheckOut    Trigger = "check_out"
)

var transitions = map[Status]map[Status]Trigger{
	StatusRequested: {
		StatusReserved: TriggerHostApprove,
		StatusRejected: TriggerHostReject,
	},
	StatusReserved: {
		StatusCancelled: TriggerCancel,
		StatusOngoing:   TriggerCheckIn,
	},
	StatusOngoing: {
		StatusEnded: TriggerCheckOut,
	},
}
