package services

import (
	"log"

	"github.com/google/uuid"

	"poxim-backend/algorithms"
	"poxim-backend/models"
)

// Expected-utility constants for the low-battery retreat decision.
// Continuing to a target risks losing both drone and mission; a retreat
// only risks the drone.
const (
	lowBatteryThreshold = 0.30

	rewardTarget  = 100.0
	penaltyTarget = 150.0
	rewardBase    = 50.0
	penaltyBase   = 100.0

	// flat utility discount when the candidate target sits in an urban
	// zone (a decision-value discount, distinct from the battery-cost
	// urban multiplier)
	urbanRiskFactor = 0.85

	// conservative per-step cost assumed by P(success)
	estimatedStepCost = 1.5
)

// EventSink - destination for narrated agent events (nil-safe optional)
type EventSink interface {
	Publish(eventType string, data map[string]interface{})
}

// SearchFunc - external path-search procedure the agent delegates to
type SearchFunc func(algorithms.Problem) *algorithms.Node

// MissionAgent - autonomous drone control loop. Keeps its own model of
// the world (position, battery, pending targets, outstanding tickets)
// and turns percepts into single-leg search problems: one target, or
// the return to base, per planning call.
type MissionAgent struct {
	id      string
	gateway *TicketGateway
	grid    models.GridConfig

	position models.Position
	battery  int
	targets  models.TargetSet

	pendingTickets   []models.Ticket
	processedTickets []models.Ticket
	currentTicket    *models.Ticket

	returningToBase bool
	missionComplete bool

	plan   []models.Action
	search SearchFunc

	chem   ChemicalSensor
	events EventSink
}

// NewMissionAgent - agent starting at base with a full battery, with
// targets synced from the gateway's open tickets. Searches with A* by
// default.
func NewMissionAgent(gateway *TicketGateway, grid models.GridConfig) *MissionAgent {
	a := &MissionAgent{
		id:       uuid.New().String(),
		gateway:  gateway,
		grid:     grid,
		position: grid.Base,
		battery:  grid.BatteryCapacity,
		search:   algorithms.AStarSearch,
	}
	a.SyncTargets()
	return a
}

// AgentID - unique agent identifier
func (a *MissionAgent) AgentID() string { return a.id }

// SetSearch - swap the external search procedure (BFS, greedy, A*)
func (a *MissionAgent) SetSearch(fn SearchFunc) { a.search = fn }

// SetChemicalSensor - attach a chemical sensor whose reading is
// included in closed-ticket payloads
func (a *MissionAgent) SetChemicalSensor(s ChemicalSensor) { a.chem = s }

// SetEventSink - attach a narration sink
func (a *MissionAgent) SetEventSink(sink EventSink) { a.events = sink }

// SyncTargets - pull open tickets from the gateway into pending
// targets
func (a *MissionAgent) SyncTargets() {
	open := a.gateway.OpenTickets()
	coords := make([]models.Position, 0, len(open))
	for _, t := range open {
		coords = append(coords, t.Coordinates)
	}
	a.targets = models.NewTargetSet(coords...)
	a.pendingTickets = open

	log.Printf("📋 open tickets synced: %d", len(open))
	for _, t := range open {
		log.Printf("   #%d: %s @ %v", t.ID, t.Title, t.Coordinates)
	}
}

// UpdateState - merge a percept into the agent's world model. Arriving
// on a pending target removes it and closes the matching ticket with a
// collection payload.
func (a *MissionAgent) UpdateState(p Percept) {
	a.position = p.Location
	a.battery = p.Battery

	if !a.targets.Contains(a.position) {
		return
	}
	a.targets = a.targets.Without(a.position)

	for i, ticket := range a.pendingTickets {
		if ticket.Coordinates != a.position {
			continue
		}

		payload := map[string]interface{}{
			"battery_remaining":   a.battery,
			"collection_position": []int{a.position.X, a.position.Y},
		}
		if a.chem != nil {
			payload["contamination"] = a.chem.ContaminationReading()
		}

		a.gateway.UpdateStatus(ticket.ID, models.TicketClosed, payload)
		a.processedTickets = append(a.processedTickets, ticket)
		a.pendingTickets = append(a.pendingTickets[:i], a.pendingTickets[i+1:]...)
		a.currentTicket = nil

		a.publish("ticket_closed", map[string]interface{}{
			"ticket_id": ticket.ID,
			"title":     ticket.Title,
			"battery":   a.battery,
		})
		break
	}
}

// utility - expected utility of flying to dest:
// U = P(success) × Reward − (1 − P(success)) × Penalty, with
// P(success) estimated from battery against a conservative 1.5×
// per-step cost over the relevant round trip.
func (a *MissionAgent) utility(dest models.Position, returnToBase bool) float64 {
	distance := a.position.ManhattanTo(dest)
	if !returnToBase {
		distance += dest.ManhattanTo(a.grid.Base)
	}
	if distance == 0 {
		return 100.0
	}

	estimated := float64(distance) * estimatedStepCost
	if estimated < 1 {
		estimated = 1
	}
	pSuccess := float64(a.battery) / estimated
	if pSuccess > 1 {
		pSuccess = 1
	}

	reward, penalty := rewardTarget, penaltyTarget
	if returnToBase {
		reward, penalty = rewardBase, penaltyBase
	}

	risk := 1.0
	if !returnToBase && a.grid.IsUrban(dest) {
		risk = urbanRiskFactor
	}

	return pSuccess*reward*risk - (1-pSuccess)*penalty
}

// FormulateGoal - next goal position, or nil when the mission is over.
// Default choice is the Manhattan-nearest pending target; below 30%
// battery the agent compares expected utilities and may irreversibly
// abort the rest of the mission in favor of the base.
func (a *MissionAgent) FormulateGoal() *models.Position {
	if a.missionComplete {
		return nil
	}

	if a.targets.Empty() {
		if a.position == a.grid.Base {
			a.missionComplete = true
			log.Println("✅ mission complete, drone at base")
			a.publish("mission_complete", map[string]interface{}{
				"battery": a.battery,
			})
			return nil
		}
		a.returningToBase = true
		log.Println("🏠 all targets collected, returning to base")
		base := a.grid.Base
		return &base
	}

	nearest := a.targets[0]
	for _, t := range a.targets[1:] {
		if a.position.ManhattanTo(t) < a.position.ManhattanTo(nearest) {
			nearest = t
		}
	}

	if float64(a.battery) < lowBatteryThreshold*float64(a.grid.BatteryCapacity) {
		uTarget := a.utility(nearest, false)
		uBase := a.utility(a.grid.Base, true)

		log.Printf("⚡ low battery (%d/%d): U(target %v)=%.2f U(base)=%.2f",
			a.battery, a.grid.BatteryCapacity, nearest, uTarget, uBase)
		a.publish("low_battery_decision", map[string]interface{}{
			"battery":  a.battery,
			"u_target": uTarget,
			"u_base":   uBase,
		})

		if uBase > uTarget {
			// Irreversible abort: remaining targets are discarded
			log.Println("🔋 retreat wins, aborting remaining targets")
			a.returningToBase = true
			a.targets = models.NewTargetSet()
			base := a.grid.Base
			return &base
		}
		log.Println("🎯 continuing to target, utility favors the mission")
	}

	for i := range a.pendingTickets {
		if a.pendingTickets[i].Coordinates == nearest {
			a.gateway.UpdateStatus(a.pendingTickets[i].ID, models.TicketInProgress, nil)
			a.currentTicket = &a.pendingTickets[i]
			break
		}
	}

	log.Printf("🎯 goal: %v (battery %d)", nearest, a.battery)
	a.publish("goal_selected", map[string]interface{}{
		"goal":    nearest,
		"battery": a.battery,
	})
	return &nearest
}

// FormulateProblem - single-leg NavigationProblem for the chosen goal.
// A return leg carries no pending targets; a collection leg carries
// exactly the one chosen coordinate.
func (a *MissionAgent) FormulateProblem(goal models.Position) *NavigationProblem {
	targets := models.NewTargetSet(goal)
	terminal := goal
	if a.returningToBase {
		targets = models.NewTargetSet()
		terminal = a.grid.Base
	}

	initial := models.State{
		Pos:     a.position,
		Battery: a.battery,
		Targets: targets,
	}
	return NewNavigationProblem(initial, terminal, a.grid)
}

// Search - run the external search procedure on a leg. A collection
// leg gets a terminal COLLECT appended; on failure the agent retries
// once with a return-to-base leg, and an empty plan reports "stuck"
// rather than an error.
func (a *MissionAgent) Search(problem *NavigationProblem) []models.Action {
	result := a.search(problem)

	if result == nil {
		log.Println("❌ no route found for current leg")
		if !a.returningToBase {
			log.Println("🔄 falling back to a return leg")
			a.returningToBase = true
			a.targets = models.NewTargetSet()

			returnProblem := NewNavigationProblem(models.State{
				Pos:     a.position,
				Battery: a.battery,
				Targets: models.NewTargetSet(),
			}, a.grid.Base, a.grid)

			if fallback := a.search(returnProblem); fallback != nil {
				actions := fallback.Solution()
				log.Printf("✈️ return route: %v", actions)
				return actions
			}
		}
		a.publish("plan_failed", map[string]interface{}{
			"position": a.position,
			"battery":  a.battery,
		})
		return nil
	}

	actions := result.Solution()
	if !a.returningToBase {
		actions = append(actions, models.ActionCollect)
	}
	log.Printf("✈️ plan: %v (%d actions)", actions, len(actions))
	return actions
}

// NextAction - one decision cycle: merge the percept, plan a new leg
// when the action queue is empty, then emit the next action. NOOP
// means mission complete or stuck.
func (a *MissionAgent) NextAction(p Percept) models.Action {
	a.UpdateState(p)

	if len(a.plan) == 0 {
		goal := a.FormulateGoal()
		if goal == nil {
			return models.ActionNoOp
		}
		problem := a.FormulateProblem(*goal)
		a.plan = a.Search(problem)
		if len(a.plan) == 0 {
			return models.ActionNoOp
		}
	}

	action := a.plan[0]
	a.plan = a.plan[1:]
	return action
}

// MissionComplete - terminal flag
func (a *MissionAgent) MissionComplete() bool { return a.missionComplete }

// ReturningToBase - retreat flag
func (a *MissionAgent) ReturningToBase() bool { return a.returningToBase }

// PendingTickets - tickets not yet collected
func (a *MissionAgent) PendingTickets() []models.Ticket { return a.pendingTickets }

// ProcessedTickets - tickets closed by this agent
func (a *MissionAgent) ProcessedTickets() []models.Ticket { return a.processedTickets }

func (a *MissionAgent) publish(eventType string, data map[string]interface{}) {
	if a.events != nil {
		a.events.Publish(eventType, data)
	}
}
