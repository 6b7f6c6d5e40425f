package scoring

import (
	"strings"
	"testing"

	"credit-advisor/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModelPath = "testdata/model_decision_tree.json"

func TestLoadModel(t *testing.T) {
	tree, err := LoadModel(testModelPath)
	require.NoError(t, err)

	assert.Len(t, tree.ChildrenLeft, 9)
	assert.Equal(t, []int{0, 1}, tree.Classes)
	assert.Equal(t, FeatureNames[:], tree.FeatureNames)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel("testdata/does-not-exist.json")
	assert.ErrorIs(t, err, ErrModelLoad)
	assert.ErrorIs(t, err, apperrors.ErrModelLoad)
}

func TestParseModelRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
	}{
		{"NotJSON", `this is a pickle`},
		{"Empty", `{}`},
		{"UnknownField", `{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,0]],"classes":[0,1],"max_depth":3}`},
		{"LengthMismatch", `{"children_left":[1,-1],"children_right":[2,-1,-1],"feature":[0,-2,-2],"threshold":[1,-2,-2],"value":[[1,0],[1,0],[0,1]],"classes":[0,1]}`},
		{"NoClasses", `{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[]],"classes":[]}`},
		{"ChildOutOfRange", `{"children_left":[1,-1,-1],"children_right":[7,-1,-1],"feature":[0,-2,-2],"threshold":[1,-2,-2],"value":[[1,1],[1,0],[0,1]],"classes":[0,1]}`},
		{"Cycle", `{"children_left":[1,0,-1],"children_right":[2,2,-1],"feature":[0,0,-2],"threshold":[1,1,-2],"value":[[1,1],[1,1],[0,1]],"classes":[0,1]}`},
		{"OneChild", `{"children_left":[-1],"children_right":[0],"feature":[-2],"threshold":[-2],"value":[[1,0]],"classes":[0,1]}`},
		{"UnknownFeature", `{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[5,-2,-2],"threshold":[1,-2,-2],"value":[[1,1],[1,0],[0,1]],"classes":[0,1]}`},
		{"ClassWeightMismatch", `{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,0,0]],"classes":[0,1]}`},
		{"WrongFeatureOrder", `{"feature_names":["liabilities","income","age","employment_type","credit_history"],"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,0]],"classes":[0,1]}`},
		{"TooFewFeatureNames", `{"feature_names":["income"],"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[1,0]],"classes":[0,1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseModel(strings.NewReader(tt.artifact))
			assert.Nil(t, tree)
			assert.ErrorIs(t, err, ErrModelLoad)
		})
	}
}

func TestParseModelSingleLeaf(t *testing.T) {
	tree, err := ParseModel(strings.NewReader(
		`{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[-2],"value":[[3,5]],"classes":[0,1]}`))
	require.NoError(t, err)

	class, err := tree.Predict(FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, 1, class)
}
