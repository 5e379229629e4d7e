package fsm

import "fmt"

// NewMachine creates an empty FSM
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{nodes: make(map[StateID]*Node[T])}
}

// Init enters the chain from Root to initialID
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		if err := m.CompilePaths(); err != nil {
			return err
		}
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	m.activeStateID = initialID
	m.activePath = append(m.activePath[:0], node.Path...)
	for _, id := range m.activePath {
		for _, fn := range m.nodes[id].OnEnter {
			fn(ctx)
		}
	}
	return nil
}

// Fire routes a trigger from the active leaf up to the root
// The first transition whose trigger matches and whose guard passes is taken
// Returns true if a transition occurred
func (m *Machine[T]) Fire(ctx T, trigger Trigger) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Trigger != trigger {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.TransitionTo(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// TransitionTo moves to targetID, exiting up to the lowest common ancestor and entering down to the target
// A transition to the active state is a no-op
func (m *Machine[T]) TransitionTo(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	targetPath := targetNode.Path
	for i := 0; i < len(m.activePath) && i < len(targetPath); i++ {
		if m.activePath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	m.move(ctx, lcaIndex, targetNode)
}

// Reenter exits every active state below the root and enters the target from the root down
// Used for full resets where shared ancestors must run their lifecycle again
func (m *Machine[T]) Reenter(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted reentry to unknown state ID %d", targetID))
	}
	m.move(ctx, 0, targetNode)
}

// move exits the active path down to keep (exclusive) then enters the target path below keep
func (m *Machine[T]) move(ctx T, keep int, target *Node[T]) {
	from := m.activeStateID

	// Exit phase: walk UP from current leaf to keep (exclusive)
	for i := len(m.activePath) - 1; i > keep; i-- {
		for _, fn := range m.nodes[m.activePath[i]].OnExit {
			fn(ctx)
		}
	}

	// Commit before entering so entry actions observe the new state
	m.activeStateID = target.ID
	m.activePath = append(m.activePath[:0], target.Path...)

	// Enter phase: walk DOWN from keep (exclusive) to target leaf
	for i := keep + 1; i < len(target.Path); i++ {
		for _, fn := range m.nodes[target.Path[i]].OnEnter {
			fn(ctx)
		}
	}

	if m.OnTransition != nil {
		m.OnTransition(ctx, from, target.ID)
	}
}

// Active returns the current leaf state
func (m *Machine[T]) Active() StateID {
	return m.activeStateID
}

// In reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) In(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// Name returns the display name of a state, empty if unknown
func (m *Machine[T]) Name(id StateID) string {
	if n, ok := m.nodes[id]; ok {
		return n.Name
	}
	return ""
}
