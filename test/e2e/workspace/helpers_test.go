package workspace_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/domain"
	wshttp "github.com/hivedesk/hivedesk/internal/workspace/http"
	"github.com/hivedesk/hivedesk/internal/workspace/service"
	"github.com/hivedesk/hivedesk/internal/workspace/store/drivers/sqlite"
	"github.com/hivedesk/hivedesk/pkg/authx"
	"github.com/hivedesk/hivedesk/pkg/idx"
	"github.com/hivedesk/hivedesk/pkg/workspacesdk"
	"github.com/stretchr/testify/require"
)

var (
	e2eSecret = []byte("e2e-test-secret")
	e2eIssuer = "hivedesk-e2e"
)

type env struct {
	server *httptest.Server
	store  *sqlite.Store
}

// setupServer stands up the full service against an in-memory database:
// real router, real middleware, real services. Only the token issuer is
// simulated, since that lives in a separate service in production.
func setupServer(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	activity := &service.LogActivityLog{Logger: logger}
	notifier := &service.LogNotifier{Logger: logger}

	router := wshttp.NewRouter(
		&authx.HMACVerifier{Secret: e2eSecret, Issuer: e2eIssuer},
		"e2e",
		st,
		logger,
	)
	router.WorkspaceService = &service.WorkspaceService{Store: st, Activity: activity, Notifier: notifier}
	router.LifecycleService = &service.LifecycleService{Store: st, Activity: activity, Notifier: notifier}
	router.MembershipService = &service.MembershipService{Store: st, Activity: activity, Notifier: notifier}
	router.InvitationService = &service.InvitationService{
		Store:    st,
		Email:    &service.LogEmailSender{Logger: logger},
		Activity: activity,
		Notifier: notifier,
	}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &env{server: server, store: st}
}

// provisionUser creates a directory record and returns an authenticated SDK
// client for it, mimicking a user provisioned by the identity provider sync.
func (e *env) provisionUser(t *testing.T, email, name string) (string, *workspacesdk.Client) {
	t.Helper()

	id := idx.New().String()
	now := time.Now().UTC()
	require.NoError(t, e.store.Users().CreateUser(context.Background(), domain.User{
		ID:          id,
		Email:       email,
		DisplayName: name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))

	token, err := authx.Sign(e2eSecret, e2eIssuer, id, email, []string{"workspaces"}, time.Hour)
	require.NoError(t, err)
	return id, workspacesdk.NewClient(e.server.URL, token)
}
