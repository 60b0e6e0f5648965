package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Command is a semantic action bound to an input slot.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandUpLeft
	CommandUpRight
	CommandDownLeft
	CommandDownRight
	CommandAbility // Fire the player's action at the nearest target
	CommandExit    // End the session
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandUpLeft:
		return "up-left"
	case CommandUpRight:
		return "up-right"
	case CommandDownLeft:
		return "down-left"
	case CommandDownRight:
		return "down-right"
	case CommandAbility:
		return "ability"
	case CommandExit:
		return "exit"
	default:
		return "unknown"
	}
}

// IsMovement reports whether the command moves the player.
func (c Command) IsMovement() bool {
	return c >= CommandUp && c <= CommandDownRight
}

// ParseCommand maps a command name (as returned by String) back to a Command.
// Short aliases used by scripted input are accepted as well.
func ParseCommand(s string) (Command, bool) {
	switch s {
	case "up", "u":
		return CommandUp, true
	case "down", "d":
		return CommandDown, true
	case "left", "l":
		return CommandLeft, true
	case "right", "r":
		return CommandRight, true
	case "up-left", "ul":
		return CommandUpLeft, true
	case "up-right", "ur":
		return CommandUpRight, true
	case "down-left", "dl":
		return CommandDownLeft, true
	case "down-right", "dr":
		return CommandDownRight, true
	case "ability", "fire", "f":
		return CommandAbility, true
	case "exit", "quit", "q":
		return CommandExit, true
	}
	return CommandNone, false
}

// SlotID is the opaque identifier carried by an input event.
type SlotID int

// Event is one input event from a display surface.
// Value is an optional payload that the core does not interpret.
type Event struct {
	ID    SlotID
	Value string
}

// SlotTable correlates event identifiers with commands.
// Surfaces register their widgets or keys once, the driving loop looks them up per event.
type SlotTable struct {
	mu    sync.RWMutex
	slots map[SlotID]Command
}

// NewSlotTable creates an empty slot table.
func NewSlotTable() *SlotTable {
	return &SlotTable{slots: make(map[SlotID]Command)}
}

// DefaultSlots returns a table with IDs 1..10 bound to the ten commands in order.
func DefaultSlots() *SlotTable {
	t := NewSlotTable()
	for c := CommandUp; c <= CommandExit; c++ {
		t.Register(SlotID(c), c)
	}
	return t
}

// Register binds an identifier to a command, replacing any previous binding.
func (t *SlotTable) Register(id SlotID, cmd Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[id] = cmd
}

// Lookup returns the command bound to id.
func (t *SlotTable) Lookup(id SlotID) (Command, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cmd, ok := t.slots[id]
	return cmd, ok
}

// IDOf returns the lowest identifier bound to cmd.
func (t *SlotTable) IDOf(cmd Command) (SlotID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]SlotID, 0, 1)
	for id, c := range t.slots {
		if c == cmd {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, false
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids[0], true
}

// Len returns the number of registered slots.
func (t *SlotTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// ParseScript turns a comma-separated list of command names into events
// bound through t, e.g. "r,r,fire,ul". Blank entries are skipped.
func ParseScript(s string, t *SlotTable) ([]Event, error) {
	var events []Event
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		cmd, ok := ParseCommand(name)
		if !ok {
			return nil, fmt.Errorf("core: unknown command %q", name)
		}
		id, ok := t.IDOf(cmd)
		if !ok {
			return nil, fmt.Errorf("core: no slot for %s", cmd)
		}
		events = append(events, Event{ID: id, Value: name})
	}
	return events, nil
}
