package scheduler

import "github.com/google/uuid"

// NewTask creates a task with a fresh id and pending status.
func NewTask(name, description string, role Role, input map[string]any, dependencies []string) *Task {
	if input == nil {
		input = make(map[string]any)
	}
	return &Task{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		Role:         role,
		InputData:    input,
		Dependencies: dependencies,
		Status:       StatusPending,
	}
}

// NewCommunityAnalysisTask creates the pipeline's entry task.
func NewCommunityAnalysisTask(sources []string, limit int) *Task {
	if len(sources) == 0 {
		sources = []string{"reddit", "discord", "steam"}
	}
	return NewTask(
		"Community Analysis",
		"Fetch and analyze community insights from all sources",
		RoleCommunityAnalyst,
		map[string]any{"sources": sources, "limit_per_source": limit},
		nil,
	)
}

// NewFeatureDesignTask creates a design task depending on the analysis
// task.
func NewFeatureDesignTask(insightsTaskID string) *Task {
	return NewTask(
		"Feature Design",
		"Generate feature proposals from community insights",
		RoleFeatureDesigner,
		nil,
		[]string{insightsTaskID},
	)
}

// NewMonetizationReviewTask creates a guardrail review task depending
// on the design task.
func NewMonetizationReviewTask(designTaskID string) *Task {
	return NewTask(
		"Monetization Review",
		"Validate proposals against F2P guardrails",
		RoleMonetizationReviewer,
		nil,
		[]string{designTaskID},
	)
}

// NewComparativeAnalysisTask creates an enrichment task depending on
// the review task.
func NewComparativeAnalysisTask(reviewTaskID string) *Task {
	return NewTask(
		"Comparative Analysis",
		"Enrich proposals with competitive insights",
		RoleComparativeAnalyst,
		nil,
		[]string{reviewTaskID},
	)
}

// NewIssueDraftingTask creates a drafting task depending on the
// comparative analysis task.
func NewIssueDraftingTask(analysisTaskID string) *Task {
	return NewTask(
		"Issue Drafting",
		"Create GitHub issue drafts from proposals",
		RoleIssueDrafter,
		nil,
		[]string{analysisTaskID},
	)
}

// NewPRCreationTask creates a PR templating task depending on the
// comparative analysis task.
func NewPRCreationTask(analysisTaskID string) *Task {
	return NewTask(
		"PR Creation",
		"Create pull request templates from proposals",
		RolePRCreator,
		nil,
		[]string{analysisTaskID},
	)
}

// NewFullPipeline creates the default five stage pipeline in
// dependency order.
func NewFullPipeline() []*Task {
	community := NewCommunityAnalysisTask(nil, 50)
	design := NewFeatureDesignTask(community.ID)
	review := NewMonetizationReviewTask(design.ID)
	analysis := NewComparativeAnalysisTask(review.ID)
	issues := NewIssueDraftingTask(analysis.ID)

	return []*Task{community, design, review, analysis, issues}
}
