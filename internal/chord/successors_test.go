package chord

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(id int64, port int) *NodeAddress {
	return NewNodeAddress(big.NewInt(id), "127.0.0.1", port)
}

func TestSuccessorList_MergeFromSuccessor(t *testing.T) {
	self := addr(1, 9001)
	s := addr(2, 9002)
	sl := newSuccessorList(3)

	// s's own list contains s itself, self, and more entries than fit.
	sl.mergeFromSuccessor(self, s, []*NodeAddress{s, self, addr(3, 9003), addr(4, 9004), addr(5, 9005)})

	all := sl.all()
	require.Len(t, all, 3)
	assert.True(t, all[0].Equals(s))
	assert.True(t, all[1].Equals(addr(3, 9003)))
	assert.True(t, all[2].Equals(addr(4, 9004)))
	for _, n := range all {
		assert.False(t, n.Equals(self))
	}
}

func TestSuccessorList_ReplaceKeepsTail(t *testing.T) {
	self := addr(1, 9001)
	sl := newSuccessorList(3)
	sl.mergeFromSuccessor(self, addr(2, 9002), []*NodeAddress{addr(3, 9003), addr(4, 9004)})

	sl.replace(addr(9, 9009))
	all := sl.all()
	require.Len(t, all, 3)
	assert.True(t, all[0].Equals(addr(9, 9009)))
	assert.True(t, all[1].Equals(addr(2, 9002)))
}

func TestSuccessorList_DropHeadAndRemove(t *testing.T) {
	self := addr(1, 9001)
	sl := newSuccessorList(3)
	sl.mergeFromSuccessor(self, addr(2, 9002), []*NodeAddress{addr(3, 9003)})

	sl.dropHead()
	require.True(t, sl.first().Equals(addr(3, 9003)))

	sl.remove(addr(3, 9003))
	assert.True(t, sl.isEmpty())
	assert.Nil(t, sl.first())

	// dropHead on an empty list is a no-op.
	sl.dropHead()
	assert.True(t, sl.isEmpty())
}

func TestSuccessorList_ExceptSelf(t *testing.T) {
	self := addr(1, 9001)
	sl := newSuccessorList(4)
	sl.replace(self)
	sl.mergeFromSuccessor(self, addr(2, 9002), []*NodeAddress{addr(3, 9003)})

	out := sl.exceptSelf(self)
	for _, n := range out {
		assert.False(t, n.Equals(self))
	}
}
