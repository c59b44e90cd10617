package scheduler

import (
	"fmt"

	"github.com/gammazero/toposort"
)

// Role identifies a pipeline stage and routes tasks to the matching
// worker.
type Role string

const (
	RoleManager              Role = "manager"
	RoleCommunityAnalyst     Role = "community_analyst"
	RoleFeatureDesigner      Role = "feature_designer"
	RoleMonetizationReviewer Role = "monetization_reviewer"
	RoleComparativeAnalyst   Role = "comparative_analyst"
	RoleIssueDrafter         Role = "issue_drafter"
	RolePRCreator            Role = "pr_creator"
)

// Definition describes a role's capabilities and its position in the
// dependency graph. The graph is declared once at startup and is
// read-only during a run.
type Definition struct {
	Role            Role     `json:"role"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Capabilities    []string `json:"capabilities"`
	RequiredInputs  []string `json:"required_inputs"`
	ProducedOutputs []string `json:"produced_outputs"`
	Dependencies    []Role   `json:"dependencies"`
}

// Registry holds role definitions and answers dependency queries.
type Registry struct {
	roles map[Role]Definition
	order []Role
}

// NewRegistry creates a registry populated with the default roles.
func NewRegistry() *Registry {
	r := &Registry{roles: make(map[Role]Definition)}
	for _, def := range defaultRoles() {
		r.Register(def)
	}
	return r
}

func defaultRoles() []Definition {
	return []Definition{
		{
			Role:            RoleManager,
			Name:            "Team Manager",
			Description:     "Orchestrates the agent team and coordinates task execution",
			Capabilities:    []string{"task_assignment", "workflow_control", "status_monitoring", "result_aggregation"},
			RequiredInputs:  []string{"task_queue"},
			ProducedOutputs: []string{"execution_report", "team_status"},
		},
		{
			Role:            RoleCommunityAnalyst,
			Name:            "Community Analyst",
			Description:     "Analyzes community feedback from various sources",
			Capabilities:    []string{"data_ingestion", "sentiment_analysis", "topic_extraction", "insight_aggregation"},
			RequiredInputs:  []string{"community_sources"},
			ProducedOutputs: []string{"community_insights", "sentiment_report"},
		},
		{
			Role:            RoleFeatureDesigner,
			Name:            "Feature Designer",
			Description:     "Generates feature proposals from community insights",
			Capabilities:    []string{"proposal_generation", "feature_scoping", "priority_assessment"},
			RequiredInputs:  []string{"community_insights"},
			ProducedOutputs: []string{"feature_proposals"},
			Dependencies:    []Role{RoleCommunityAnalyst},
		},
		{
			Role:            RoleMonetizationReviewer,
			Name:            "Monetization Reviewer",
			Description:     "Reviews proposals for F2P compliance",
			Capabilities:    []string{"guardrail_checking", "f2p_validation", "policy_enforcement"},
			RequiredInputs:  []string{"feature_proposals"},
			ProducedOutputs: []string{"validated_proposals", "compliance_report"},
			Dependencies:    []Role{RoleFeatureDesigner},
		},
		{
			Role:            RoleComparativeAnalyst,
			Name:            "Comparative Analyst",
			Description:     "Enriches proposals with competitive analysis",
			Capabilities:    []string{"competitor_research", "feature_comparison", "best_practice_identification"},
			RequiredInputs:  []string{"validated_proposals"},
			ProducedOutputs: []string{"enriched_proposals"},
			Dependencies:    []Role{RoleMonetizationReviewer},
		},
		{
			Role:            RoleIssueDrafter,
			Name:            "Issue Drafter",
			Description:     "Creates GitHub issue drafts from proposals",
			Capabilities:    []string{"issue_formatting", "label_assignment", "milestone_suggestion"},
			RequiredInputs:  []string{"enriched_proposals"},
			ProducedOutputs: []string{"drafted_issues"},
			Dependencies:    []Role{RoleComparativeAnalyst},
		},
		{
			Role:            RolePRCreator,
			Name:            "PR Creator",
			Description:     "Creates pull request templates from proposals",
			Capabilities:    []string{"pr_formatting", "branch_naming", "checklist_generation"},
			RequiredInputs:  []string{"enriched_proposals"},
			ProducedOutputs: []string{"drafted_prs"},
			Dependencies:    []Role{RoleComparativeAnalyst},
		},
	}
}

// Register adds or replaces a role definition.
func (r *Registry) Register(def Definition) {
	if _, exists := r.roles[def.Role]; !exists {
		r.order = append(r.order, def.Role)
	}
	r.roles[def.Role] = def
}

// Get returns the definition for a role.
func (r *Registry) Get(role Role) (Definition, error) {
	def, ok := r.roles[role]
	if !ok {
		return Definition{}, fmt.Errorf("role not found: %s", role)
	}
	return def, nil
}

// All returns every definition in registration order.
func (r *Registry) All() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, role := range r.order {
		defs = append(defs, r.roles[role])
	}
	return defs
}

// Dependencies returns the declared dependencies of a role.
func (r *Registry) Dependencies(role Role) []Role {
	return r.roles[role].Dependencies
}

// ExecutionOrder returns the roles topologically sorted so every role
// appears after its dependencies. A cyclic declaration is an error,
// not a hang.
func (r *Registry) ExecutionOrder() ([]Role, error) {
	var edges []toposort.Edge
	for _, role := range r.order {
		deps := r.roles[role].Dependencies
		if len(deps) == 0 {
			edges = append(edges, toposort.Edge{nil, string(role)})
			continue
		}
		for _, dep := range deps {
			if _, ok := r.roles[dep]; !ok {
				return nil, fmt.Errorf("role %s depends on unregistered role %s", role, dep)
			}
			edges = append(edges, toposort.Edge{string(dep), string(role)})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("role graph contains cycle: %w", err)
	}

	order := make([]Role, 0, len(sorted))
	for _, v := range sorted {
		if v == nil {
			continue
		}
		order = append(order, Role(v.(string)))
	}
	return order, nil
}
