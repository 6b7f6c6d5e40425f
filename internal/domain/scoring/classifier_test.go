package scoring

import (
	"testing"

	"credit-advisor/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestTree(t *testing.T) *DecisionTree {
	t.Helper()
	tree, err := LoadModel(testModelPath)
	require.NoError(t, err)
	return tree
}

func TestDecisionTreePredict(t *testing.T) {
	tree := loadTestTree(t)

	tests := []struct {
		name string
		x    FeatureVector
		want int
	}{
		{"StrongApplicant", FeatureVector{5000, 1200, 39, 0, 0}, 1},
		{"PoorHistory", FeatureVector{5000, 1200, 39, 0, 2}, 0},
		{"NoHistory", FeatureVector{9000, 0, 45, 2, 3}, 0},
		{"LowIncome", FeatureVector{2500, 100, 30, 0, 0}, 0},
		{"TooYoung", FeatureVector{5000, 100, 19, 0, 1}, 0},
		{"HeavyLiabilities", FeatureVector{8000, 4500, 40, 1, 1}, 0},
		{"ThresholdGoesLeft", FeatureVector{3000.01, 4000, 20.5 + 0.5, 0, 1.5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.Predict(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecisionTreeIsDeterministic(t *testing.T) {
	tree := loadTestTree(t)
	x := FeatureVector{5000, 1200, 39, 0, 0}

	first, err := tree.Predict(x)
	require.NoError(t, err)
	for range 100 {
		got, err := tree.Predict(x)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestDecisionTreeWithoutValidationFailsSafely(t *testing.T) {
	tree := &DecisionTree{
		ChildrenLeft:  []int{0},
		ChildrenRight: []int{0},
		Feature:       []int{0},
		Threshold:     []float64{1},
		Value:         [][]float64{{1, 0}},
		Classes:       []int{0, 1},
	}

	_, err := tree.Predict(FeatureVector{})
	assert.ErrorIs(t, err, apperrors.ErrModelContract)
}

func TestDecisionTreeWithoutValidationRejectsBadIndexes(t *testing.T) {
	tests := []struct {
		name string
		tree *DecisionTree
	}{
		{
			name: "feature out of range",
			tree: &DecisionTree{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{7, -2, -2},
				Threshold:     []float64{0.5, -2, -2},
				Value:         [][]float64{{1, 1}, {1, 0}, {0, 1}},
				Classes:       []int{0, 1},
			},
		},
		{
			name: "negative feature",
			tree: &DecisionTree{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{-2, -2, -2},
				Threshold:     []float64{0.5, -2, -2},
				Value:         [][]float64{{1, 1}, {1, 0}, {0, 1}},
				Classes:       []int{0, 1},
			},
		},
		{
			name: "short split arrays",
			tree: &DecisionTree{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{},
				Feature:       []int{0},
				Threshold:     []float64{},
				Value:         [][]float64{{1, 1}, {1, 0}, {0, 1}},
				Classes:       []int{0, 1},
			},
		},
		{
			name: "leaf without weights",
			tree: &DecisionTree{
				ChildrenLeft:  []int{-1},
				ChildrenRight: []int{-1},
				Feature:       []int{-2},
				Threshold:     []float64{-2},
			},
		},
		{
			name: "no classes",
			tree: &DecisionTree{
				ChildrenLeft:  []int{-1},
				ChildrenRight: []int{-1},
				Feature:       []int{-2},
				Threshold:     []float64{-2},
				Value:         [][]float64{{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			assert.NotPanics(t, func() {
				_, err = tt.tree.Predict(FeatureVector{1, 1, 1, 1, 1})
			})
			assert.ErrorIs(t, err, apperrors.ErrModelContract)
		})
	}
}
