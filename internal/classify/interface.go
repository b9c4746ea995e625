package classify

// Unavailable is the sentinel emitted when a signal could not be read.
// It is distinct from an empty field: no classifier ever returns "".
const Unavailable = "N/A"

// ConnectivityState is the health classification of one attached headset.
type ConnectivityState int

const (
	ConnectivityUnknown ConnectivityState = iota
	ConnectivityCritical
	ConnectivityStrange
	ConnectivityOffline
	ConnectivityUnauthorized
	ConnectivityHealthy
	ConnectivityNotFound
)

func (s ConnectivityState) String() string {
	switch s {
	case ConnectivityCritical:
		return "CRITICAL ERROR"
	case ConnectivityStrange:
		return "STRANGE STATE"
	case ConnectivityOffline:
		return "OFFLINE ERROR"
	case ConnectivityUnauthorized:
		return "UNAUTHORIZED"
	case ConnectivityHealthy:
		return "device"
	case ConnectivityNotFound:
		return "NOT FOUND"
	default:
		return "UNKNOWN ERROR"
	}
}

// ChargingState classifies the negotiated charging speed.
type ChargingState int

const (
	ChargingUnknown ChargingState = iota
	ChargingFast
	ChargingSlow
)

func (s ChargingState) String() string {
	switch s {
	case ChargingFast:
		return "FAST CHARGING"
	case ChargingSlow:
		return "SLOW CHARGING"
	default:
		return Unavailable
	}
}

// AudioRouteState classifies the default audio sink.
type AudioRouteState int

const (
	RouteUnknown AudioRouteState = iota
	RouteOK
	RouteTV
	RouteWrong
)

func (s AudioRouteState) String() string {
	switch s {
	case RouteOK:
		return "OK"
	case RouteTV:
		return "TV IS DEFAULT"
	case RouteWrong:
		return "WRONG OUTPUT"
	default:
		return Unavailable
	}
}

// CheckResult is the outcome of a marker lookup in a configuration blob.
// CheckError means the lookup itself failed, which is not the same as the
// marker being absent.
type CheckResult int

const (
	CheckError CheckResult = iota
	CheckPresent
	CheckAbsent
)

func (r CheckResult) String() string {
	switch r {
	case CheckPresent:
		return "OK"
	case CheckAbsent:
		return "MISSING"
	default:
		return "GREP ERROR"
	}
}

// RemoteIDState classifies a remote-access identity against the factory
// placeholder id that unprovisioned stations ship with.
type RemoteIDState int

const (
	IDUnknown RemoteIDState = iota
	IDOK
	IDDuplicate
)

func (s RemoteIDState) String() string {
	switch s {
	case IDOK:
		return "ok"
	case IDDuplicate:
		return "DUPLICATED ID"
	default:
		return Unavailable
	}
}

// AssignmentState classifies whether a remote-access agent is bound to an
// account.
type AssignmentState int

const (
	AssignedUnknown AssignmentState = iota
	AssignedYes
	AssignedNo
)

func (s AssignmentState) String() string {
	switch s {
	case AssignedYes:
		return "YES"
	case AssignedNo:
		return "NO"
	default:
		return Unavailable
	}
}

// ScreenState classifies the headset display power state.
type ScreenState int

const (
	ScreenUnknown ScreenState = iota
	ScreenOn
	ScreenOff
)

func (s ScreenState) String() string {
	switch s {
	case ScreenOn:
		return "ON"
	case ScreenOff:
		return "OFF"
	default:
		return Unavailable
	}
}

// GameState classifies whether the game process is running. The rendered
// value answers the question "game closed?".
type GameState int

const (
	GameUnknown GameState = iota
	GameRunning
	GameStopped
)

func (s GameState) String() string {
	switch s {
	case GameRunning:
		return "NO"
	case GameStopped:
		return "YES"
	default:
		return Unavailable
	}
}
