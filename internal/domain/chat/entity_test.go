package chat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyOrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	require.Equal(t, PairKey(a, b), PairKey(b, a))
	assert.NotEqual(t, PairKey(a, b), PairKey(a, uuid.New()))
}

func TestIsMember(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := Chat{Members: []Member{{UserID: a}, {UserID: b}}}

	assert.True(t, c.IsMember(a))
	assert.True(t, c.IsMember(b))
	assert.False(t, c.IsMember(uuid.New()))
}

func TestIsAdmin(t *testing.T) {
	admin := uuid.New()

	individual := Chat{}
	assert.False(t, individual.IsAdmin(admin))

	group := Chat{IsGroup: true, GroupAdminID: uuid.NullUUID{UUID: admin, Valid: true}}
	assert.True(t, group.IsAdmin(admin))
	assert.False(t, group.IsAdmin(uuid.New()))
}

func TestOtherMember(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := Chat{Members: []Member{{UserID: a}, {UserID: b}}}

	other, ok := c.OtherMember(a)
	require.True(t, ok)
	assert.Equal(t, b, other)

	other, ok = c.OtherMember(b)
	require.True(t, ok)
	assert.Equal(t, a, other)

	empty := Chat{}
	_, ok = empty.OtherMember(a)
	assert.False(t, ok)
}

func TestMemberIDsPreservesJoinOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	c := Chat{Members: []Member{{UserID: ids[0]}, {UserID: ids[1]}, {UserID: ids[2]}}}

	assert.Equal(t, ids, c.MemberIDs())
}
