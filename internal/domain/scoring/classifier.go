package scoring

import (
	"fmt"

	"credit-advisor/internal/pkg/apperrors"
)

const leafNode = -1

// FeatureVector is income, liabilities, age, employment type code, credit history code.
type FeatureVector [5]float64

var FeatureNames = [5]string{"income", "liabilities", "age", "employment_type", "credit_history"}

type Classifier interface {
	Predict(x FeatureVector) (int, error)
}

// DecisionTree is a fitted CART tree in the array layout produced by scikit-learn's
// tree_ attribute. Node 0 is the root; a node with children_left == -1 is a leaf.
type DecisionTree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
	Classes       []int       `json:"classes"`
	FeatureNames  []string    `json:"feature_names,omitempty"`
}

var _ Classifier = (*DecisionTree)(nil)

func (t *DecisionTree) Predict(x FeatureVector) (int, error) {
	node := 0
	for steps := 0; steps <= len(t.ChildrenLeft); steps++ {
		if node < 0 || node >= len(t.ChildrenLeft) {
			return 0, fmt.Errorf("%w: node index %d out of range", apperrors.ErrModelContract, node)
		}
		if t.ChildrenLeft[node] == leafNode {
			return t.classAt(node)
		}
		if node >= len(t.ChildrenRight) || node >= len(t.Feature) || node >= len(t.Threshold) {
			return 0, fmt.Errorf("%w: node %d is missing from the split arrays", apperrors.ErrModelContract, node)
		}
		feature := t.Feature[node]
		if feature < 0 || feature >= len(x) {
			return 0, fmt.Errorf("%w: node %d splits on feature %d", apperrors.ErrModelContract, node, feature)
		}
		if x[feature] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return 0, fmt.Errorf("%w: tree walk did not reach a leaf", apperrors.ErrModelContract)
}

func (t *DecisionTree) classAt(node int) (int, error) {
	if node >= len(t.Value) || len(t.Classes) == 0 {
		return 0, fmt.Errorf("%w: leaf %d has no class weights", apperrors.ErrModelContract, node)
	}
	counts := t.Value[node]
	if len(counts) != len(t.Classes) {
		return 0, fmt.Errorf("%w: leaf %d has %d class weights for %d classes",
			apperrors.ErrModelContract, node, len(counts), len(t.Classes))
	}
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return t.Classes[best], nil
}
