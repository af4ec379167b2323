package apitests

import "strings"

// Requirement is a precondition for running a Stage, checked against the session state
// when the stage is reached.
type Requirement interface {
	Description() string
	SatisfiedBy(*Session) bool
}

type requiresToken struct{}

// RequiresToken is satisfied when an earlier stage has obtained a bearer token.
var RequiresToken Requirement = requiresToken{}

func (requiresToken) Description() string { return "a session token" }

func (requiresToken) SatisfiedBy(s *Session) bool { return s.HasToken() }

// Stage is a named group of test cases.
type Stage struct {
	Name     string
	Requires []Requirement
	Run      func(*T)
}

// Unmet returns the descriptions of the requirements that the session does not satisfy.
func (s Stage) Unmet(session *Session) []string {
	var unmet []string
	for _, r := range s.Requires {
		if !r.SatisfiedBy(session) {
			unmet = append(unmet, r.Description())
		}
	}
	return unmet
}

// Pipeline is the ordered list of stages in a run. Stages see each other's effects on the
// session, so the order matters.
type Pipeline []Stage

// Run runs each stage as a subtest of t. A stage whose requirements are not met is reported
// as skipped, naming what it was missing, and the pipeline moves on to the next stage.
func (p Pipeline) Run(t *T) {
	for _, stage := range p {
		stage := stage
		t.Run(stage.Name, func(t *T) {
			if unmet := stage.Unmet(t.Session()); len(unmet) != 0 {
				t.SkipWithReason("requires " + strings.Join(unmet, " and "))
			}
			stage.Run(t)
		})
	}
}
