package model

// regressor evaluates one row of feature values in schema order.
type regressor interface {
	predict(x []float64) float64
}

type linear struct {
	coef      []float64
	intercept float64
}

func (m linear) predict(x []float64) float64 {
	y := m.intercept
	for i, c := range m.coef {
		y += c * x[i]
	}
	return y
}

type forest struct {
	trees [][]nodeDef
}

func (m forest) predict(x []float64) float64 {
	var sum float64
	for _, nodes := range m.trees {
		sum += walk(nodes, x)
	}
	return sum / float64(len(m.trees))
}

func walk(nodes []nodeDef, x []float64) float64 {
	i := 0
	for nodes[i].Left != -1 {
		nd := nodes[i]
		if x[nd.Feature] <= nd.Threshold {
			i = nd.Left
		} else {
			i = nd.Right
		}
	}
	return nodes[i].Value
}

func newRegressor(a *artifact) regressor {
	if a.Kind == KindForest {
		trees := make([][]nodeDef, len(a.Trees))
		for i, t := range a.Trees {
			trees[i] = t.Nodes
		}
		return forest{trees: trees}
	}
	return linear{coef: a.Coef, intercept: a.Intercept}
}
