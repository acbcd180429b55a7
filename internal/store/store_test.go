package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(topic string) {
	p.topics = append(p.topics, topic)
}

func newTestStore(t *testing.T) (*Store, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	s, err := New(t.TempDir(), nil, pub)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, pub
}

func newChild(id, owner, name string) *domain.Child {
	now := time.Now().UTC()
	return &domain.Child{
		CreatedAt: now, UpdatedAt: now,
		ID: id, OwnerID: owner, Name: name, Age: 8,
	}
}

func newItem(id, owner, child string, start, end domain.Date) *domain.ScheduledItem {
	now := time.Now().UTC()
	return &domain.ScheduledItem{
		CreatedAt: now, UpdatedAt: now,
		ID: id, OwnerID: owner, ChildID: child,
		CampID: "cmp-1", StartDate: start, EndDate: end,
		Status: domain.StatusPlanned,
	}
}

func TestChildrenCRUD(t *testing.T) {
	s, pub := newTestStore(t)
	ctx := t.Context()

	c := newChild("chd-1", "acc-1", "Maya")
	require.NoError(t, s.Children.Create(ctx, c.ID, c))

	got, err := s.Children.Get(ctx, "chd-1")
	require.NoError(t, err)
	assert.Equal(t, "Maya", got.Name)

	got.Name = "Maya B"
	require.NoError(t, s.Children.Update(ctx, got.ID, got))

	got, err = s.Children.Get(ctx, "chd-1")
	require.NoError(t, err)
	assert.Equal(t, "Maya B", got.Name)

	require.NoError(t, s.Children.Delete(ctx, "chd-1"))
	_, err = s.Children.Get(ctx, "chd-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	assert.Contains(t, pub.topics, bus.TopicChildren)
}

func TestCreateDuplicateID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	c := newChild("chd-1", "acc-1", "Maya")
	require.NoError(t, s.Children.Create(ctx, c.ID, c))
	err := s.Children.Create(ctx, c.ID, c)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestListByOwnerIndex(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Children.Create(ctx, "chd-1", newChild("chd-1", "acc-1", "Maya")))
	require.NoError(t, s.Children.Create(ctx, "chd-2", newChild("chd-2", "acc-1", "Leo")))
	require.NoError(t, s.Children.Create(ctx, "chd-3", newChild("chd-3", "acc-2", "Ana")))

	var names []string
	for c, err := range s.Children.ListByIndex(ctx, "owner", "acc-1") {
		require.NoError(t, err)
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Maya", "Leo"}, names)
}

func TestInterestUniqueKey(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	ci := &domain.CampInterest{
		ID: "int-1", OwnerID: "acc-1", ChildID: "chd-1", CampID: "cmp-1", WeekNumber: 3,
	}
	require.NoError(t, s.Interests.Create(ctx, ci.ID, ci))

	dup := &domain.CampInterest{
		ID: "int-2", OwnerID: "acc-1", ChildID: "chd-1", CampID: "cmp-1", WeekNumber: 3,
	}
	err := s.Interests.Create(ctx, dup.ID, dup)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	// Same tuple, looked up by its natural key for upsert.
	got, err := s.Interests.GetByIndex(ctx, "key", domain.InterestKey("acc-1", "chd-1", "cmp-1", 3))
	require.NoError(t, err)
	assert.Equal(t, "int-1", got.ID)

	// A different week is a different row.
	other := &domain.CampInterest{
		ID: "int-3", OwnerID: "acc-1", ChildID: "chd-1", CampID: "cmp-1", WeekNumber: 4,
	}
	assert.NoError(t, s.Interests.Create(ctx, other.ID, other))
}

func TestSquadInviteCodeLookup(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	sq := &domain.Squad{ID: "sqd-1", OwnerID: "acc-1", Name: "Oak Street", InviteCode: "XK7P2M4H"}
	require.NoError(t, s.Squads.Create(ctx, sq.ID, sq))

	got, err := s.Squads.GetByIndex(ctx, "invite_code", "xk7p2m4h")
	require.NoError(t, err)
	assert.Equal(t, "sqd-1", got.ID)
}

func TestSquadMemberIndexFollowsUpdates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	sq := &domain.Squad{ID: "sqd-1", OwnerID: "acc-1", Name: "Oak Street", InviteCode: "XK7P2M4H"}
	sq.AddMember(domain.SquadMember{UserID: "acc-1", DisplayName: "Sam"})
	require.NoError(t, s.Squads.Create(ctx, sq.ID, sq))

	countFor := func(userID string) int {
		n := 0
		for _, err := range s.Squads.ListByIndex(ctx, "member", userID) {
			require.NoError(t, err)
			n++
		}
		return n
	}

	assert.Equal(t, 1, countFor("acc-1"))
	assert.Equal(t, 0, countFor("acc-2"))

	sq.AddMember(domain.SquadMember{UserID: "acc-2", DisplayName: "Robin"})
	require.NoError(t, s.Squads.Update(ctx, sq.ID, sq))
	assert.Equal(t, 1, countFor("acc-2"))

	sq.RemoveMember("acc-2")
	require.NoError(t, s.Squads.Update(ctx, sq.ID, sq))
	assert.Equal(t, 0, countFor("acc-2"))
}

func TestDeleteChildCascade(t *testing.T) {
	s, pub := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Children.Create(ctx, "chd-1", newChild("chd-1", "acc-1", "Maya")))
	require.NoError(t, s.Children.Create(ctx, "chd-2", newChild("chd-2", "acc-1", "Leo")))

	require.NoError(t, s.Items.Create(ctx, "itm-1", newItem("itm-1", "acc-1", "chd-1", "2026-06-08", "2026-06-12")))
	require.NoError(t, s.Items.Create(ctx, "itm-2", newItem("itm-2", "acc-1", "chd-2", "2026-06-08", "2026-06-12")))

	ci := &domain.CampInterest{ID: "int-1", OwnerID: "acc-1", ChildID: "chd-1", CampID: "cmp-1", WeekNumber: 2}
	require.NoError(t, s.Interests.Create(ctx, ci.ID, ci))

	pub.topics = nil
	require.NoError(t, s.DeleteChildCascade(ctx, "acc-1", "chd-1"))

	_, err := s.Children.Get(ctx, "chd-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = s.Items.Get(ctx, "itm-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = s.Interests.Get(ctx, "int-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// The sibling's rows survive.
	_, err = s.Children.Get(ctx, "chd-2")
	assert.NoError(t, err)
	_, err = s.Items.Get(ctx, "itm-2")
	assert.NoError(t, err)

	assert.Contains(t, pub.topics, bus.TopicChildren)
	assert.Contains(t, pub.topics, bus.TopicItems)
	assert.Contains(t, pub.topics, bus.TopicInterests)
}

func TestDeleteChildCascadeOwnership(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.Children.Create(ctx, "chd-1", newChild("chd-1", "acc-1", "Maya")))

	err := s.DeleteChildCascade(ctx, "acc-2", "chd-1")
	assert.True(t, errors.Is(err, errors.ErrNotOwner))

	err = s.DeleteChildCascade(ctx, "acc-1", "chd-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPurgeSampleData(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()

	sample := newChild("chd-1", "acc-1", "Demo Kid")
	sample.Sample = true
	require.NoError(t, s.Children.Create(ctx, sample.ID, sample))
	require.NoError(t, s.Children.Create(ctx, "chd-2", newChild("chd-2", "acc-1", "Maya")))

	si := newItem("itm-1", "acc-1", "chd-1", "2026-06-08", "2026-06-12")
	si.Sample = true
	require.NoError(t, s.Items.Create(ctx, si.ID, si))

	// Another account's sample rows are untouched.
	other := newChild("chd-3", "acc-2", "Demo Kid")
	other.Sample = true
	require.NoError(t, s.Children.Create(ctx, other.ID, other))

	removed, err := s.PurgeSampleData(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = s.Children.Get(ctx, "chd-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = s.Children.Get(ctx, "chd-2")
	assert.NoError(t, err)
	_, err = s.Children.Get(ctx, "chd-3")
	assert.NoError(t, err)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.Children.Delete(t.Context(), "chd-none"))
}
