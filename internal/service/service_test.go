package service

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/ratelimit"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// fixture wires the full service stack over a temp store and catalog.
type fixture struct {
	store     *store.Store
	catalog   *catalog.Catalog
	children  *ChildService
	schedule  *ScheduleService
	interests *InterestService
	squads    *SquadService
	profiles  *ProfileService
	planner   *PlannerService
	previews  *PreviewService
	samples   *SampleService
}

func testSeason() config.SeasonConfig {
	return config.SeasonConfig{
		DefaultSchoolEnd:   "2026-06-05",
		DefaultSchoolStart: "2026-08-19",
		BudgetWarnFraction: 0.8,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(t.TempDir(), nil, store.NoopPublisher{})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalogDir := t.TempDir()
	camps := []domain.Camp{
		{ID: "cmp-1", Name: "Forest Rangers", Category: "Nature", MinAge: 6, MaxAge: 12, MinPrice: 350,
			Hours: "9am-3pm", ExtendedCare: "8am-5:30pm"},
		{ID: "cmp-2", Name: "Robotics Lab", Category: "STEM", MinAge: 9, MaxAge: 14, MinPrice: 550,
			RegDate: "March 15"},
	}
	data, err := json.Marshal(camps)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "camps.json"), data, 0o644))

	cat, err := catalog.New(catalogDir, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })

	v := validation.New()
	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)

	profiles := NewProfileService(st, v, testSeason(), logger)
	planner := NewPlannerService(st, cat, profiles, testSeason(), logger)

	return &fixture{
		store:     st,
		catalog:   cat,
		children:  NewChildService(st, v, logger),
		schedule:  NewScheduleService(st, v, logger),
		interests: NewInterestService(st, v, logger),
		squads:    NewSquadService(st, cat, v, limiter, logger),
		profiles:  profiles,
		planner:   planner,
		previews:  NewPreviewService(st, planner, v, logger),
		samples:   NewSampleService(st, profiles, logger),
	}
}

func (f *fixture) addChild(t *testing.T, owner, name string, age int) *domain.Child {
	t.Helper()
	child, err := f.children.Create(t.Context(), owner, CreateChildParams{Name: name, Age: age})
	require.NoError(t, err)
	return child
}

func (f *fixture) addItem(t *testing.T, owner, childID, campID, start, end string, price int) *domain.ScheduledItem {
	t.Helper()
	item, err := f.schedule.Create(t.Context(), owner, CreateItemParams{
		ChildID: childID, CampID: campID, StartDate: start, EndDate: end, Price: price,
	})
	require.NoError(t, err)
	return item
}

func TestScheduleCampXorBlock(t *testing.T) {
	f := newFixture(t)
	child := f.addChild(t, "acc-1", "Maya", 8)

	_, err := f.schedule.Create(t.Context(), "acc-1", CreateItemParams{
		ChildID: child.ID, StartDate: "2026-06-08", EndDate: "2026-06-12",
	})
	assert.True(t, errors.Is(err, errors.ErrValidation), "neither camp nor block")

	_, err = f.schedule.Create(t.Context(), "acc-1", CreateItemParams{
		ChildID: child.ID, CampID: "cmp-1", BlockType: "vacation",
		StartDate: "2026-06-08", EndDate: "2026-06-12",
	})
	assert.True(t, errors.Is(err, errors.ErrValidation), "both camp and block")
}

func TestScheduleRejectsReversedDates(t *testing.T) {
	f := newFixture(t)
	child := f.addChild(t, "acc-1", "Maya", 8)

	_, err := f.schedule.Create(t.Context(), "acc-1", CreateItemParams{
		ChildID: child.ID, CampID: "cmp-1", StartDate: "2026-06-12", EndDate: "2026-06-08",
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidDateRange))
}

func TestScheduleOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	child := f.addChild(t, "acc-1", "Maya", 8)
	item := f.addItem(t, "acc-1", child.ID, "cmp-1", "2026-06-08", "2026-06-12", 350)

	_, err := f.schedule.Get(t.Context(), "acc-2", item.ID)
	assert.True(t, errors.Is(err, errors.ErrNotOwner))

	err = f.schedule.Delete(t.Context(), "acc-2", item.ID)
	assert.True(t, errors.Is(err, errors.ErrNotOwner))
}

func TestChildDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)
	f.addItem(t, "acc-1", child.ID, "cmp-1", "2026-06-08", "2026-06-12", 350)
	_, err := f.interests.Upsert(ctx, "acc-1", UpsertInterestParams{
		ChildID: child.ID, CampID: "cmp-2", WeekNumber: 3,
	})
	require.NoError(t, err)

	require.NoError(t, f.children.Delete(ctx, "acc-1", child.ID))

	items, err := f.schedule.List(ctx, "acc-1", "")
	require.NoError(t, err)
	assert.Empty(t, items)
	interests, err := f.interests.List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestInterestUpsertIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)

	first, err := f.interests.Upsert(ctx, "acc-1", UpsertInterestParams{
		ChildID: child.ID, CampID: "cmp-2", WeekNumber: 3, LookingForFriends: false,
	})
	require.NoError(t, err)

	second, err := f.interests.Upsert(ctx, "acc-1", UpsertInterestParams{
		ChildID: child.ID, CampID: "cmp-2", WeekNumber: 3, LookingForFriends: true,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.LookingForFriends)

	all, err := f.interests.List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlannerSnapshotAndPlan(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)
	f.addItem(t, "acc-1", child.ID, "cmp-1", "2026-06-08", "2026-06-12", 350)
	f.addItem(t, "acc-1", child.ID, "cmp-2", "2026-06-22", "2026-06-26", 550)

	plan, err := f.planner.PlanForChild(ctx, "acc-1", child.ID)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, plan.CoveredWeeks)
	assert.Equal(t, 900, plan.TotalCost)
	assert.Len(t, plan.Weeks, 11)
	assert.Empty(t, plan.Conflicts)

	_, err = f.planner.PlanForChild(ctx, "acc-1", "chd-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSummaryBudgetWarning(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)
	f.addItem(t, "acc-1", child.ID, "cmp-1", "2026-06-08", "2026-06-12", 900)

	_, err := f.profiles.Put(ctx, "acc-1", PutProfileParams{Budget: 1000})
	require.NoError(t, err)

	sum, err := f.planner.Summary(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 900, sum.TotalCost)
	assert.True(t, sum.BudgetWarn, "900 is past 80%% of 1000")
}

func TestSquadInterestDisclosure(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	// Two peers: one reveals identity, one hides it. Both share schedules.
	revealChild := f.addChild(t, "acc-reveal", "Noah", 9)
	hiddenChild := f.addChild(t, "acc-hidden", "Ivy", 8)

	squad, err := f.squads.Create(ctx, "acc-caller", CreateSquadParams{
		Name: "Oak Street", DisplayName: "Sam", RevealIdentity: true, ShareSchedule: true,
	})
	require.NoError(t, err)

	_, err = f.squads.Join(ctx, "acc-reveal", JoinSquadParams{
		InviteCode: squad.InviteCode, DisplayName: "Priya",
		RevealIdentity: true, ShareSchedule: true,
	})
	require.NoError(t, err)
	_, err = f.squads.Join(ctx, "acc-hidden", JoinSquadParams{
		InviteCode: squad.InviteCode, DisplayName: "Jordan",
		RevealIdentity: false, ShareSchedule: true,
	})
	require.NoError(t, err)

	_, err = f.interests.Upsert(ctx, "acc-reveal", UpsertInterestParams{
		ChildID: revealChild.ID, CampID: "cmp-1", WeekNumber: 2,
	})
	require.NoError(t, err)
	_, err = f.interests.Upsert(ctx, "acc-hidden", UpsertInterestParams{
		ChildID: hiddenChild.ID, CampID: "cmp-2", WeekNumber: 4,
	})
	require.NoError(t, err)

	rows, err := f.squads.SquadInterests(ctx, "acc-caller", squad.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, row := range rows {
		switch row.CampID {
		case "cmp-1":
			require.NotNil(t, row.OwnerID)
			assert.Equal(t, "acc-reveal", *row.OwnerID)
			assert.Equal(t, "Priya", row.MemberName)
			require.NotNil(t, row.ChildName)
			assert.Equal(t, "Noah", *row.ChildName)
		case "cmp-2":
			assert.Nil(t, row.OwnerID)
			assert.Nil(t, row.ChildID)
			assert.Nil(t, row.ChildName)
			assert.Equal(t, domain.PlaceholderFriendName, row.MemberName)
		default:
			t.Fatalf("unexpected camp %s", row.CampID)
		}
	}
}

func TestSquadInterestsRequireMembership(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	squad, err := f.squads.Create(ctx, "acc-1", CreateSquadParams{
		Name: "Oak Street", DisplayName: "Sam",
	})
	require.NoError(t, err)

	_, err = f.squads.SquadInterests(ctx, "acc-stranger", squad.ID)
	assert.True(t, errors.Is(err, errors.ErrNotOwner))
}

func TestSquadJoinRateLimited(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	limiter := ratelimit.New(0.1, 2)
	defer limiter.Stop()
	f.squads.joinLimit = limiter

	for range 2 {
		_, err := f.squads.Join(ctx, "acc-guesser", JoinSquadParams{
			InviteCode: "WRONGCOD", DisplayName: "X",
		})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	}

	_, err := f.squads.Join(ctx, "acc-guesser", JoinSquadParams{
		InviteCode: "WRONGCOD", DisplayName: "X",
	})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestPreviewIsolationAndCommit(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)

	staged, err := f.previews.StageInsertItem(ctx, "acc-1", CreateItemParams{
		ChildID: child.ID, CampID: "cmp-1", StartDate: "2026-06-08", EndDate: "2026-06-12", Price: 350,
	})
	require.NoError(t, err)

	// Derivation over the materialized snapshot sees the staged item.
	plan, err := f.previews.PlanForChild(ctx, "acc-1", child.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, plan.CoveredWeeks)

	// The persisted state does not.
	items, err := f.schedule.List(ctx, "acc-1", "")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Commit replays the op for real.
	result := f.previews.Commit(ctx, "acc-1")
	assert.False(t, result.Failed)
	assert.Equal(t, 1, result.Applied)

	items, err = f.schedule.List(ctx, "acc-1", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, staged.ID, items[0].ID)
	assert.Empty(t, f.previews.Pending("acc-1"))
}

func TestPreviewCommitPartialFailureKeepsRemainder(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	child := f.addChild(t, "acc-1", "Maya", 8)

	ok, err := f.previews.StageInsertItem(ctx, "acc-1", CreateItemParams{
		ChildID: child.ID, CampID: "cmp-1", StartDate: "2026-06-08", EndDate: "2026-06-12",
	})
	require.NoError(t, err)

	// Stage the same insert again; the second replay hits a duplicate ID.
	f.previews.overlay("acc-1").Append(f.previews.Pending("acc-1")[0])
	after, err := f.previews.StageInsertItem(ctx, "acc-1", CreateItemParams{
		ChildID: child.ID, CampID: "cmp-2", StartDate: "2026-06-22", EndDate: "2026-06-26",
	})
	require.NoError(t, err)

	result := f.previews.Commit(ctx, "acc-1")
	assert.True(t, result.Failed)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.FailedIndex)
	assert.True(t, errors.Is(result.Err, errors.ErrPreviewConflict))

	// The first insert landed, the failing op and its successor remain.
	items, err := f.schedule.List(ctx, "acc-1", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ok.ID, items[0].ID)

	pending := f.previews.Pending("acc-1")
	require.Len(t, pending, 2)
	assert.Equal(t, after.ID, pending[1].ID)

	f.previews.Discard("acc-1")
	assert.Empty(t, f.previews.Pending("acc-1"))
}

func TestSampleSeedAndPurge(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	keeper := f.addChild(t, "acc-1", "Maya", 8)
	require.NoError(t, f.samples.Seed(ctx, "acc-1"))

	children, err := f.children.List(ctx, "acc-1")
	require.NoError(t, err)
	assert.Len(t, children, 3)

	removed, err := f.samples.Purge(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 7, removed, "2 children + 4 items + 1 interest")

	children, err = f.children.List(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, keeper.ID, children[0].ID)
}

func TestProfileDefaultsApplied(t *testing.T) {
	f := newFixture(t)

	profile, err := f.profiles.Get(context.Background(), "acc-fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2026-06-05"), profile.SchoolEnd)
	assert.Equal(t, domain.Date("2026-08-19"), profile.SchoolStart)
}
