// Package model loads the exported regression model and serves predictions.
package model

import (
	"fmt"
)

// Kind identifies the regressor family of an artifact.
type Kind string

const (
	// KindLinear is an ordinary least-squares style linear model.
	KindLinear Kind = "linear"
	// KindForest is a tree ensemble averaged over its trees.
	KindForest Kind = "forest"
)

// artifact is the on-disk export. JSON exports decode too since YAML is a superset.
type artifact struct {
	Kind         Kind              `yaml:"kind"`
	FeatureNames []string          `yaml:"feature_names_in"`
	Coef         []float64         `yaml:"coef"`
	Intercept    float64           `yaml:"intercept"`
	Trees        []treeDef         `yaml:"trees"`
	Metadata     map[string]string `yaml:"metadata"`
}

type treeDef struct {
	Nodes []nodeDef `yaml:"nodes"`
}

// nodeDef follows the sklearn tree layout: a node is a leaf when Left is -1.
type nodeDef struct {
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Value     float64 `yaml:"value"`
}

func (a *artifact) validate() error {
	n := len(a.FeatureNames)
	switch a.Kind {
	case KindLinear:
		if len(a.Coef) != n {
			return fmt.Errorf("linear model has %d coefficients for %d features", len(a.Coef), n)
		}
	case KindForest:
		if len(a.Trees) == 0 {
			return fmt.Errorf("forest model has no trees")
		}
		for i, t := range a.Trees {
			if err := t.validate(n); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown model kind %q", a.Kind)
	}
	return nil
}

func (t treeDef) validate(features int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, nd := range t.Nodes {
		if nd.Left == -1 {
			continue
		}
		if nd.Feature < 0 || nd.Feature >= features {
			return fmt.Errorf("node %d: feature index %d out of range", i, nd.Feature)
		}
		// Children must come after their parent, which also rules out cycles.
		if nd.Left <= i || nd.Left >= len(t.Nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, nd.Left)
		}
		if nd.Right <= i || nd.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, nd.Right)
		}
	}
	return nil
}
