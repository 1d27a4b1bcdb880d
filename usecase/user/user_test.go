package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiji1/overleaf/domain/model"
)

// mockMongo is a scripted MongoRunner: each Eval is answered by the
// first rule whose substring matches the expression.
type mockMongo struct {
	degraded bool
	rules    []mongoRule
	calls    []string
}

type mongoRule struct {
	contains string
	stdout   string
	exitCode int
	err      error
}

func (m *mockMongo) Eval(ctx context.Context, expr string) (*model.CommandResult, error) {
	m.calls = append(m.calls, expr)
	for _, r := range m.rules {
		if strings.Contains(expr, r.contains) {
			if r.err != nil {
				return nil, r.err
			}
			return &model.CommandResult{Stdout: r.stdout, ExitCode: r.exitCode}, nil
		}
	}
	return nil, errors.New("unexpected expression: " + expr)
}

func (m *mockMongo) Degraded() bool { return m.degraded }

// mockScripts records maintenance script invocations.
type mockScripts struct {
	createCalls []struct {
		email string
		admin bool
	}
	deleteCalls []struct {
		email     string
		skipEmail bool
	}
	result *model.CommandResult
	err    error
}

func (m *mockScripts) CreateUser(ctx context.Context, email string, admin bool) (*model.CommandResult, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		admin bool
	}{email, admin})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockScripts) DeleteUser(ctx context.Context, email string, skipEmail bool) (*model.CommandResult, error) {
	m.deleteCalls = append(m.deleteCalls, struct {
		email     string
		skipEmail bool
	}{email, skipEmail})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockAudit records appended entries.
type mockAudit struct {
	entries []*model.AuditEntry
}

func (m *mockAudit) Append(ctx context.Context, e *model.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAudit) List(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	return m.entries, nil
}

func newUseCase(mongo *mockMongo, scripts *mockScripts, audit *mockAudit) *UseCase {
	p := &Ports{Mongo: mongo, Scripts: scripts}
	if audit != nil {
		p.Audit = audit
	}
	return &UseCase{Ports: p}
}

func TestExists(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "countDocuments", stdout: "1\n"}}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.Exists(context.Background(), &ExistsInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Count)
	require.Len(t, mongo.calls, 1)
	assert.Contains(t, mongo.calls[0], "'a@b.co'")
}

func TestExistsZero(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "countDocuments", stdout: "0"}}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.Exists(context.Background(), &ExistsInput{Email: "gone@b.co"})
	require.NoError(t, err)
	assert.Zero(t, out.Count)
}

func TestExistsRemoteFailure(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "countDocuments", stdout: "", exitCode: 1}}}
	u := newUseCase(mongo, nil, nil)

	_, err := u.Exists(context.Background(), &ExistsInput{Email: "a@b.co"})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{
		contains: "find",
		stdout:   `[{"email": "a@b.co", "isAdmin": true, "emails": [{"email": "a@b.co"}]}, {"email": "c@d.co", "emails": []}]`,
	}}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.List(context.Background(), &ListInput{})
	require.NoError(t, err)
	assert.False(t, out.Degraded)
	require.Len(t, out.Users, 2)
	assert.True(t, out.Users[0].IsAdmin)
}

func TestListFallsBackOnGarbage(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{
		contains: "find",
		stdout:   "connecting to: mongodb://...\n{ \"email\" : \"a@b.co\" }\n{ \"email\" : \"c@d.co\" }\n",
	}}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.List(context.Background(), &ListInput{})
	require.NoError(t, err)
	assert.True(t, out.Degraded)
	assert.Equal(t, []string{"a@b.co", "c@d.co"}, out.Emails)
}

func TestListDegradedRunner(t *testing.T) {
	mongo := &mockMongo{
		degraded: true,
		rules:    []mongoRule{{contains: "find", stdout: `one@example.com and one@example.com again`}},
	}
	u := newUseCase(mongo, nil, nil)

	out, err := u.List(context.Background(), &ListInput{})
	require.NoError(t, err)
	assert.True(t, out.Degraded)
	assert.Equal(t, []string{"one@example.com"}, out.Emails)

	// The legacy shell has no EJSON global; it must get the printjson
	// expression.
	require.Len(t, mongo.calls, 1)
	assert.Contains(t, mongo.calls[0], "forEach(printjson)")
	assert.NotContains(t, mongo.calls[0], "EJSON.stringify")
}

func TestGetNotFound(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "findOne", stdout: "null\n"}}}
	u := newUseCase(mongo, nil, nil)

	_, err := u.Get(context.Background(), &GetInput{Email: "gone@b.co"})
	assert.True(t, errors.Is(err, model.ErrUserNotFound))
}

func TestCreate(t *testing.T) {
	scripts := &mockScripts{result: &model.CommandResult{Stdout: "created", ExitCode: 0}}
	audit := &mockAudit{}
	u := newUseCase(&mockMongo{}, scripts, audit)

	_, err := u.Create(context.Background(), &CreateInput{Email: "new@b.co", Admin: true})
	require.NoError(t, err)
	require.Len(t, scripts.createCalls, 1)
	assert.True(t, scripts.createCalls[0].admin)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditOpCreate, audit.entries[0].Operation)
	assert.True(t, audit.entries[0].Success)
}

func TestCreateScriptFailure(t *testing.T) {
	scripts := &mockScripts{result: &model.CommandResult{Stderr: "duplicate key", ExitCode: 1}}
	audit := &mockAudit{}
	u := newUseCase(&mockMongo{}, scripts, audit)

	_, err := u.Create(context.Background(), &CreateInput{Email: "dup@b.co"})
	assert.Error(t, err)
	require.Len(t, audit.entries, 1)
	assert.False(t, audit.entries[0].Success)
}

func TestDeletePassesSkipEmail(t *testing.T) {
	scripts := &mockScripts{result: &model.CommandResult{ExitCode: 0}}
	u := newUseCase(&mockMongo{}, scripts, nil)

	_, err := u.Delete(context.Background(), &DeleteInput{Email: "a@b.co", SkipEmail: true})
	require.NoError(t, err)
	require.Len(t, scripts.deleteCalls, 1)
	assert.True(t, scripts.deleteCalls[0].skipEmail)
}

func TestAdminFlag(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "findOne", stdout: `{"_id": {"$oid": "65a0"}, "isAdmin": false}`}}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.AdminFlag(context.Background(), &AdminFlagInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.False(t, out.Admin)
}

// Toggling issues exactly one update expression and never re-queries.
func TestSetAdminSingleUpdate(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "updateOne", stdout: "1\n"}}}
	audit := &mockAudit{}
	u := newUseCase(mongo, nil, audit)

	out, err := u.SetAdmin(context.Background(), &SetAdminInput{Email: "a@b.co", Admin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Modified)
	require.Len(t, mongo.calls, 1)
	assert.Contains(t, mongo.calls[0], "{$set: {isAdmin: true}}")
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.AuditOpSetAdmin, audit.entries[0].Operation)
}

func TestSetAdminClearAudit(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "updateOne", stdout: "1"}}}
	audit := &mockAudit{}
	u := newUseCase(mongo, nil, audit)

	_, err := u.SetAdmin(context.Background(), &SetAdminInput{Email: "a@b.co", Admin: false})
	require.NoError(t, err)
	assert.Equal(t, model.AuditOpClearAdmin, audit.entries[0].Operation)
}

func TestVerify(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{{contains: "confirmedAt", stdout: "1"}}}
	audit := &mockAudit{}
	u := newUseCase(mongo, nil, audit)

	out, err := u.Verify(context.Background(), &VerifyInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Modified)
	require.Len(t, mongo.calls, 1)
	assert.Contains(t, mongo.calls[0], "emails.0.confirmedAt")
	assert.Equal(t, model.AuditOpVerifyEmail, audit.entries[0].Operation)
}

func TestStats(t *testing.T) {
	mongo := &mockMongo{rules: []mongoRule{
		{contains: "countDocuments({})", stdout: "10\n"},
		{contains: "isAdmin: true", stdout: "2\n"},
		{contains: "confirmedAt", stdout: "7\n"},
	}}
	u := newUseCase(mongo, nil, nil)

	out, err := u.Stats(context.Background(), &StatsInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Stats.Total)
	assert.Equal(t, int64(2), out.Stats.Admins)
	assert.Equal(t, int64(7), out.Stats.Verified)
	assert.Equal(t, int64(3), out.Stats.Unverified())
	assert.Len(t, mongo.calls, 3)
}
