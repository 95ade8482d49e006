package services

import (
	"log"
	"sync"

	"poxim-backend/models"
)

// Sample - pollution sample waiting at a ticket coordinate
type Sample struct {
	TicketID  int             `json:"ticket_id"`
	Title     string          `json:"title"`
	Position  models.Position `json:"position"`
	Collected bool            `json:"collected"`
}

// Percept - everything an agent can observe in one cycle
type Percept struct {
	Location      models.Position
	Battery       int
	NearbySamples []*Sample // uncollected samples within radius 1
	IsUrban       bool
	AtBase        bool
}

// AgentProgram - decision loop contract the environment drives.
// One percept in, one action out, per step.
type AgentProgram interface {
	AgentID() string
	NextAction(p Percept) models.Action
}

// Environment - authoritative mutable world model. Owns the battery
// and collected-sample ledgers and agent locations; agents only ever
// see copies via Percept and act through ExecuteAction.
type Environment struct {
	mu sync.RWMutex

	grid    models.GridConfig
	samples []*Sample

	agents    []AgentProgram
	locations map[string]models.Position
	batteries map[string]int
	collected map[string][]*Sample
	bumped    map[string]bool

	steps int
}

// NewEnvironment - empty world over the given grid
func NewEnvironment(grid models.GridConfig) *Environment {
	return &Environment{
		grid:      grid,
		locations: make(map[string]models.Position),
		batteries: make(map[string]int),
		collected: make(map[string][]*Sample),
		bumped:    make(map[string]bool),
	}
}

// AddSample - place a sample in the world
func (e *Environment) AddSample(s *Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.samples = append(e.samples, s)
}

// AddAgentAt - register an agent at a location with a full battery
func (e *Environment) AddAgentAt(agent AgentProgram, loc models.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.agents = append(e.agents, agent)
	e.locations[agent.AgentID()] = loc
	e.batteries[agent.AgentID()] = e.grid.BatteryCapacity
	e.collected[agent.AgentID()] = nil
}

// Percept - what the agent observes: location, battery (full capacity
// when unseen), uncollected samples within radius 1, urban flag, base flag
func (e *Environment) Percept(agentID string) Percept {
	e.mu.RLock()
	defer e.mu.RUnlock()

	loc := e.locations[agentID]
	battery, ok := e.batteries[agentID]
	if !ok {
		battery = e.grid.BatteryCapacity
	}

	var nearby []*Sample
	for _, s := range e.samples {
		if !s.Collected && s.Position.ManhattanTo(loc) <= 1 {
			nearby = append(nearby, s)
		}
	}

	return Percept{
		Location:      loc,
		Battery:       battery,
		NearbySamples: nearby,
		IsUrban:       e.grid.IsUrban(loc),
		AtBase:        loc == e.grid.Base,
	}
}

// ExecuteAction - apply one action to the world. Refusals (bounds,
// obstacle, insufficient battery) are no-ops carrying a bump/refusal
// signal; nothing here ever returns an error.
func (e *Environment) ExecuteAction(agentID string, action models.Action) {
	if action == models.ActionNoOp || action == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.batteries[agentID]; !ok {
		e.batteries[agentID] = e.grid.BatteryCapacity
	}

	// Drained drone is inoperative
	if e.batteries[agentID] <= 0 {
		log.Printf("⚠️ drone %s out of battery at %v, action ignored", agentID, e.locations[agentID])
		return
	}

	if dx, dy, ok := action.Delta(); ok {
		loc := e.locations[agentID]
		dest := loc.Shift(dx, dy)

		if !e.grid.InBounds(dest) {
			e.bumped[agentID] = true
			log.Printf("⚠️ move blocked: %v out of bounds", dest)
			return
		}
		if e.grid.IsObstacle(dest) {
			e.bumped[agentID] = true
			log.Printf("⚠️ move blocked: obstacle at %v", dest)
			return
		}

		charge := e.grid.StepCost(dest)
		if e.batteries[agentID] < charge {
			log.Printf("⚠️ insufficient battery for move (%d needed, %d left)", charge, e.batteries[agentID])
			return
		}

		e.batteries[agentID] -= charge
		e.locations[agentID] = dest
		return
	}

	if action == models.ActionCollect {
		loc := e.locations[agentID]
		found := false
		for _, s := range e.samples {
			if s.Position == loc && !s.Collected {
				s.Collected = true
				e.collected[agentID] = append(e.collected[agentID], s)
				e.batteries[agentID]-- // 1 battery unit per sample collected
				found = true
				log.Printf("🧪 sample collected: #%d %s at %v", s.TicketID, s.Title, loc)
			}
		}
		if !found {
			log.Printf("ℹ️ no sample to collect at %v", loc)
		}
		return
	}

	log.Printf("❓ unknown action: %q", action)
}

// Battery - ledgered battery level of an agent
func (e *Environment) Battery(agentID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.batteries[agentID]; ok {
		return b
	}
	return e.grid.BatteryCapacity
}

// Location - current location of an agent
func (e *Environment) Location(agentID string) models.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locations[agentID]
}

// Bumped - reads and clears the bump flag
func (e *Environment) Bumped(agentID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := e.bumped[agentID]
	e.bumped[agentID] = false
	return b
}

// CollectedSamples - samples an agent has collected so far
func (e *Environment) CollectedSamples(agentID string) []*Sample {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Sample, len(e.collected[agentID]))
	copy(out, e.collected[agentID])
	return out
}

// AllSamplesCollected - true when no uncollected sample remains
func (e *Environment) AllSamplesCollected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.allSamplesCollectedLocked()
}

func (e *Environment) allSamplesCollectedLocked() bool {
	for _, s := range e.samples {
		if !s.Collected {
			return false
		}
	}
	return true
}

// IsDone - no agents, or every agent drained, or every sample
// collected with every agent back at base
func (e *Environment) IsDone() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.agents) == 0 {
		return true
	}

	allDrained := true
	allAtBase := true
	for _, a := range e.agents {
		if e.batteries[a.AgentID()] > 0 {
			allDrained = false
		}
		if e.locations[a.AgentID()] != e.grid.Base {
			allAtBase = false
		}
	}
	if allDrained {
		return true
	}

	return e.allSamplesCollectedLocked() && allAtBase
}

// Step - one simulation step: every agent perceives, decides and acts
// exactly once
func (e *Environment) Step() {
	e.mu.Lock()
	e.steps++
	agents := make([]AgentProgram, len(e.agents))
	copy(agents, e.agents)
	e.mu.Unlock()

	for _, a := range agents {
		percept := e.Percept(a.AgentID())
		action := a.NextAction(percept)
		e.ExecuteAction(a.AgentID(), action)
	}
}

// StepCount - steps executed so far
func (e *Environment) StepCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.steps
}

// Grid - the static grid configuration
func (e *Environment) Grid() models.GridConfig {
	return e.grid
}
