package entity

// State represents a pop's current behavior state. Exactly one state handler
// runs per pop per simulation tick.
type State int

const (
	// StateIdle - standing around until the idle timer expires.
	StateIdle State = iota
	// StateWandering - walking to a random nearby point.
	StateWandering
	// StateCommanded - moving to a player-ordered destination.
	StateCommanded
	// StateForaging - travelling to or working a claimed slot on a bush.
	StateForaging
	// StateHauling - collecting ground items and delivering to a stockpile.
	StateHauling
	// StateWaiting - holding position after a command or a depleted task.
	StateWaiting

	// Declared but not yet implemented; these route to the idle handler.
	StateEating
	StateSleeping
	StateWorking
	StateCrafting
	StateBuilding
	StateAttacking
	StateFleeing
	StateSocializing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWandering:
		return "wandering"
	case StateCommanded:
		return "commanded"
	case StateForaging:
		return "foraging"
	case StateHauling:
		return "hauling"
	case StateWaiting:
		return "waiting"
	case StateEating:
		return "eating"
	case StateSleeping:
		return "sleeping"
	case StateWorking:
		return "working"
	case StateCrafting:
		return "crafting"
	case StateBuilding:
		return "building"
	case StateAttacking:
		return "attacking"
	case StateFleeing:
		return "fleeing"
	case StateSocializing:
		return "socializing"
	default:
		return "unknown"
	}
}

// Implemented reports whether the state has a real handler. Unimplemented
// states fall back to idle behavior.
func (s State) Implemented() bool {
	switch s {
	case StateIdle, StateWandering, StateCommanded, StateForaging, StateHauling, StateWaiting:
		return true
	default:
		return false
	}
}

// HaulPhase is the sub-state within StateHauling.
type HaulPhase int

const (
	HaulFindItem HaulPhase = iota
	HaulMoveToItem
	HaulCollectItem
	HaulFindDropoff
	HaulMoveToDropoff
	HaulDepositItem
)

// String returns a human-readable phase name.
func (p HaulPhase) String() string {
	switch p {
	case HaulFindItem:
		return "find_item"
	case HaulMoveToItem:
		return "move_to_item"
	case HaulCollectItem:
		return "collect_item"
	case HaulFindDropoff:
		return "find_dropoff"
	case HaulMoveToDropoff:
		return "move_to_dropoff"
	case HaulDepositItem:
		return "deposit_item"
	default:
		return "unknown"
	}
}
