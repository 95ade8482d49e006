package algorithms

import (
	"poxim-backend/models"
)

// InstrumentedProblem - transparent measuring wrapper around a Problem.
// Counts one expansion per Actions call (the entry point a search
// procedure hits once per expanded node) and forwards everything else
// unchanged, including initial/goal rebinding.
type InstrumentedProblem struct {
	problem    Problem
	Expansions int
}

// NewInstrumentedProblem - wrap a problem for expansion counting
func NewInstrumentedProblem(p Problem) *InstrumentedProblem {
	return &InstrumentedProblem{problem: p}
}

func (ip *InstrumentedProblem) Initial() models.State      { return ip.problem.Initial() }
func (ip *InstrumentedProblem) SetInitial(s models.State)  { ip.problem.SetInitial(s) }
func (ip *InstrumentedProblem) Goal() models.Position      { return ip.problem.Goal() }
func (ip *InstrumentedProblem) SetGoal(g models.Position)  { ip.problem.SetGoal(g) }

// Actions - counts the expansion and delegates
func (ip *InstrumentedProblem) Actions(s models.State) []models.Action {
	ip.Expansions++
	return ip.problem.Actions(s)
}

func (ip *InstrumentedProblem) Result(s models.State, a models.Action) models.State {
	return ip.problem.Result(s, a)
}

func (ip *InstrumentedProblem) GoalTest(s models.State) bool {
	return ip.problem.GoalTest(s)
}

func (ip *InstrumentedProblem) PathCost(c float64, s1 models.State, a models.Action, s2 models.State) float64 {
	return ip.problem.PathCost(c, s1, a, s2)
}

func (ip *InstrumentedProblem) H(s models.State) float64 {
	return ip.problem.H(s)
}
