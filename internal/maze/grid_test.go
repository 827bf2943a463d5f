package maze

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func TestNewRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name         string
		width, depth int
	}{
		{"zero width", 0, 3},
		{"zero depth", 3, 0},
		{"negative", -1, -1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := New(test.width, test.depth)
			assert.ErrorIs(t, err, ErrInvalidDimension)
			assert.Nil(t, g)
		})
	}
}

func TestNewLaysOutCells(t *testing.T) {
	g, err := New(4, 3)
	require.NoError(t, err)

	assert.Equal(t, 12, g.Len())
	assert.Equal(t, 1, g.WeightRange)
	for x := range 4 {
		for z := range 3 {
			cell := g.At(Coord{x, z})
			require.NotNil(t, cell)
			assert.Equal(t, Coord{x, z}, cell.Coord)
			assert.False(t, cell.InMaze)
			assert.Zero(t, cell.AdjacentsOpened)
		}
	}
	assert.Nil(t, g.At(Coord{4, 0}))
	assert.Nil(t, g.At(Coord{0, -1}))
}

func TestAssignRandomWeights(t *testing.T) {
	g, err := New(10, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, g.AssignRandomWeights(0, 1), ErrInvalidWeightRange)

	require.NoError(t, g.AssignRandomWeights(DefaultWeightRange, 42))
	first := make([]int, g.Len())
	for i, cell := range g.Cells {
		assert.GreaterOrEqual(t, cell.Weight, 0)
		assert.Less(t, cell.Weight, DefaultWeightRange)
		first[i] = cell.Weight
	}

	other, err := New(10, 10)
	require.NoError(t, err)
	require.NoError(t, other.AssignRandomWeights(DefaultWeightRange, 42))
	for i, cell := range other.Cells {
		assert.Equal(t, first[i], cell.Weight, "weight of %s", cell.Coord)
	}
}

func TestAssignWeightsUsesCallerRand(t *testing.T) {
	g, err := New(5, 5)
	require.NoError(t, err)
	require.NoError(t, g.AssignWeights(3, rand.New(rand.NewPCG(1, 2))))

	r := rand.New(rand.NewPCG(1, 2))
	for _, cell := range g.Cells {
		assert.Equal(t, r.IntN(3), cell.Weight)
	}
	assert.Equal(t, 3, g.WeightRange)
}

func TestSetWeightsValidates(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, g.SetWeights(0, []int{0, 0, 0, 0}), ErrInvalidWeightRange)
	assert.ErrorIs(t, g.SetWeights(2, []int{0, 0, 0}), ErrInvalidWeights)
	assert.ErrorIs(t, g.SetWeights(2, []int{0, 1, 2, 0}), ErrInvalidWeights)
	assert.ErrorIs(t, g.SetWeights(2, []int{0, -1, 1, 0}), ErrInvalidWeights)

	require.NoError(t, g.SetWeights(2, []int{0, 1, 1, 0}))
	assert.Equal(t, 1, g.At(Coord{0, 1}).Weight)
	assert.Equal(t, 1, g.At(Coord{1, 0}).Weight)
}

func TestAdjacencyDiscoveryOrder(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)
	g.ComputeAdjacency()

	assert.Equal(t,
		[]Coord{{0, 1}, {2, 1}, {1, 0}, {1, 2}},
		g.At(Coord{1, 1}).Adjacents,
		"equal weights keep left, right, up, down",
	)
	assert.Equal(t, []Coord{{1, 0}, {0, 1}}, g.At(Coord{0, 0}).Adjacents)
	assert.Equal(t, []Coord{{1, 2}, {2, 1}}, g.At(Coord{2, 2}).Adjacents)
}

func TestAdjacencySortedByWeight(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)
	// x outer, z inner
	require.NoError(t, g.SetWeights(10, []int{
		0, 7, 0, // x = 0
		5, 0, 2, // x = 1
		0, 2, 0, // x = 2
	}))
	g.ComputeAdjacency()

	// neighbors of (1,1): left (0,1)=7, right (2,1)=2, up (1,0)=5, down (1,2)=2
	assert.Equal(t,
		[]Coord{{2, 1}, {1, 2}, {1, 0}, {0, 1}},
		g.At(Coord{1, 1}).Adjacents,
	)
	assert.True(t, g.Linked())

	require.NoError(t, g.AssignRandomWeights(10, 3))
	assert.False(t, g.Linked(), "new weights invalidate adjacency")
}

func TestAdjacencySymmetric(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]int{{1, 1}, {1, 7}, {7, 1}, {6, 9}, {20, 20}} {
		g, err := New(size[0], size[1])
		require.NoError(t, err)
		require.NoError(t, g.AssignRandomWeights(DefaultWeightRange, uint64(size[0]*31+size[1])))
		g.ComputeAdjacency()

		for _, cell := range g.Cells {
			assert.LessOrEqual(t, len(cell.Adjacents), 4)
			for _, n := range cell.Adjacents {
				other := g.At(n)
				require.NotNil(t, other)
				assert.Contains(t, other.Adjacents, cell.Coord,
					"%s lists %s but not the reverse", cell.Coord, n)
			}
		}
	}
}
