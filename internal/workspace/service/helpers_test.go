package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	"github.com/hivedesk/hivedesk/internal/workspace/store"
	"github.com/hivedesk/hivedesk/internal/workspace/store/drivers/sqlite"
	"github.com/hivedesk/hivedesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	store store.Store
	clock *fakeClock

	workspaces  *WorkspaceService
	lifecycle   *LifecycleService
	membership  *MembershipService
	invitations *InvitationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := &fakeClock{t: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	activity := &LogActivityLog{Logger: logger}
	notifier := &LogNotifier{Logger: logger}

	return &testEnv{
		store: st,
		clock: clock,
		workspaces: &WorkspaceService{
			Store:    st,
			Activity: activity,
			Notifier: notifier,
			now:      clock.Now,
		},
		lifecycle: &LifecycleService{
			Store:    st,
			Activity: activity,
			Notifier: notifier,
			now:      clock.Now,
		},
		membership: &MembershipService{
			Store:    st,
			Activity: activity,
			Notifier: notifier,
			now:      clock.Now,
		},
		invitations: &InvitationService{
			Store:    st,
			Email:    &LogEmailSender{Logger: logger},
			Activity: activity,
			Notifier: notifier,
			now:      clock.Now,
		},
	}
}

func (e *testEnv) seedUser(t *testing.T, email, name string) string {
	t.Helper()
	id := idx.New().String()
	require.NoError(t, e.store.Users().CreateUser(context.Background(), domain.User{
		ID:          id,
		Email:       email,
		DisplayName: name,
		CreatedAt:   e.clock.Now(),
		UpdatedAt:   e.clock.Now(),
	}))
	return id
}

func (e *testEnv) createWorkspace(t *testing.T, name, ownerID string) domain.Workspace {
	t.Helper()
	ws, err := e.workspaces.Create(context.Background(), name, "", ownerID)
	require.NoError(t, err)
	return ws
}

// requireCountInvariant asserts members_count always equals the number of
// member rows plus one for the implicit owner.
func (e *testEnv) requireCountInvariant(t *testing.T, workspaceID string) {
	t.Helper()
	ctx := context.Background()
	ws, err := e.store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	require.NoError(t, err)
	members, err := e.store.Members().ListMembers(ctx, workspaceID)
	require.NoError(t, err)
	require.Equal(t, len(members)+1, ws.MembersCount)
}
