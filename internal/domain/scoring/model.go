package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"credit-advisor/internal/pkg/apperrors"
)

var ErrModelLoad = fmt.Errorf("failed to load classifier: %w", apperrors.ErrModelLoad)

func LoadModel(path string) (*DecisionTree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	defer f.Close()

	return ParseModel(f)
}

func ParseModel(r io.Reader) (*DecisionTree, error) {
	var tree DecisionTree
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: malformed artifact: %w", ErrModelLoad, err)
	}
	if err := tree.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	return &tree, nil
}

func (t *DecisionTree) validate() error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays disagree in length")
	}
	if len(t.Classes) == 0 {
		return fmt.Errorf("no classes")
	}

	if len(t.FeatureNames) > 0 {
		if len(t.FeatureNames) != len(FeatureNames) {
			return fmt.Errorf("expected %d features, artifact names %d", len(FeatureNames), len(t.FeatureNames))
		}
		for i, name := range t.FeatureNames {
			if name != FeatureNames[i] {
				return fmt.Errorf("feature %d is %q, expected %q", i, name, FeatureNames[i])
			}
		}
	}

	for i := range n {
		if len(t.Value[i]) != len(t.Classes) {
			return fmt.Errorf("node %d has %d class weights for %d classes", i, len(t.Value[i]), len(t.Classes))
		}

		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafNode {
			if right != leafNode {
				return fmt.Errorf("node %d has only one child", i)
			}
			continue
		}
		// Children always come after their parent, which also rules out cycles.
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has children out of range", i)
		}
		if f := t.Feature[i]; f < 0 || f >= len(FeatureNames) {
			return fmt.Errorf("node %d splits on unknown feature %d", i, f)
		}
		if math.IsNaN(t.Threshold[i]) {
			return fmt.Errorf("node %d has no threshold", i)
		}
	}
	return nil
}
