package coordinator

const (
	unspecifiedLabel = "Unspecified"
	unknownLabel     = "Unknown"
)

// MemberState is a state of a group member:
// JOINING -> ASSIGNED -> REBALANCING -> ASSIGNED -> ... -> LEFT.
type MemberState uint8

const (
	MemberStateUnspecified MemberState = iota
	MemberStateJoining
	MemberStateAssigned
	MemberStateRebalancing
	MemberStateLeft
)

func (s MemberState) String() string {
	switch s {
	case MemberStateUnspecified:
		return unspecifiedLabel
	case MemberStateJoining:
		return "Joining"
	case MemberStateAssigned:
		return "Assigned"
	case MemberStateRebalancing:
		return "Rebalancing"
	case MemberStateLeft:
		return "Left"
	default:
		return unknownLabel
	}
}
