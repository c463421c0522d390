package pipeline

import (
	"github.com/lfrtheme/themelet/internal/asset"
	"github.com/lfrtheme/themelet/internal/dag"
)

// Stage names.
const (
	StageLint            = "lint-styles"
	StageInjectCSS       = "inject-css"
	StageInjectJS        = "inject-js"
	stageAggregatePrefix = "aggregate-"
)

// AggregateStage returns the stage name that aggregates category.
func AggregateStage(category asset.Category) string {
	return stageAggregatePrefix + string(category)
}

// InjectStages lists the inject stages.
var InjectStages = []string{StageInjectCSS, StageInjectJS}

// BuildGraph returns the full build graph:
//
//	lint-styles → {aggregate-css, aggregate-images, aggregate-js, aggregate-templates} → {inject-css, inject-js}
//
// Every aggregate stage precedes every inject stage. Without lint the
// aggregate stages form the first level.
func BuildGraph(lint bool) *dag.Graph {
	g := dag.New()

	if lint {
		g.AddNode(StageLint)
	}
	for _, category := range asset.Categories {
		aggregate := AggregateStage(category)
		g.AddNode(aggregate)
		if lint {
			g.AddEdge(StageLint, aggregate)
		}
		for _, inject := range InjectStages {
			g.AddEdge(aggregate, inject)
		}
	}

	return g
}

// InjectGraph returns the graph of the inject phase alone.
func InjectGraph() *dag.Graph {
	g := dag.New()
	for _, inject := range InjectStages {
		g.AddNode(inject)
	}
	return g
}

// LintGraph returns the graph of the lint phase alone.
func LintGraph() *dag.Graph {
	g := dag.New()
	g.AddNode(StageLint)
	return g
}
