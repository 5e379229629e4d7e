package fsm

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Trigger names an input that may cause a transition
type Trigger int

// Machine is a single-region Hierarchical Finite State Machine
// T is the context type passed to actions and guards
// Not safe for concurrent use, the owner serializes calls
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes    map[StateID]*Node[T]
	compiled bool

	// Runtime state
	activeStateID StateID
	activePath    []StateID // Root -> ... -> Leaf

	// OnTransition observes every completed state change
	OnTransition func(ctx T, from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup
	Path []StateID

	// Lifecycle actions, run in registration order
	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Trigger  Trigger
	Guard    GuardFunc[T] // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect on entry or exit
type ActionFunc[T any] func(ctx T)
