package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/extdb"
)

type memConnRepo struct {
	conns map[uuid.UUID]*DataConnection
}

func newMemConnRepo() *memConnRepo {
	return &memConnRepo{conns: map[uuid.UUID]*DataConnection{}}
}

func (r *memConnRepo) Create(ctx context.Context, conn *DataConnection) error {
	conn.ID = uuid.New()
	r.conns[conn.ID] = conn
	return nil
}

func (r *memConnRepo) GetByID(ctx context.Context, id uuid.UUID) (*DataConnection, error) {
	conn, ok := r.conns[id]
	if !ok {
		return nil, fmt.Errorf("connection not found")
	}
	return conn, nil
}

func (r *memConnRepo) Update(ctx context.Context, conn *DataConnection) error {
	r.conns[conn.ID] = conn
	return nil
}

func (r *memConnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.conns, id)
	return nil
}

func (r *memConnRepo) List(ctx context.Context) ([]*DataConnection, error) {
	var out []*DataConnection
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out, nil
}

type memQueryRepo struct {
	queries map[uuid.UUID]*SavedQuery
}

func newMemQueryRepo() *memQueryRepo {
	return &memQueryRepo{queries: map[uuid.UUID]*SavedQuery{}}
}

func (r *memQueryRepo) Create(ctx context.Context, q *SavedQuery) error {
	q.ID = uuid.New()
	r.queries[q.ID] = q
	return nil
}

func (r *memQueryRepo) GetByID(ctx context.Context, id uuid.UUID) (*SavedQuery, error) {
	q, ok := r.queries[id]
	if !ok {
		return nil, fmt.Errorf("saved query not found")
	}
	return q, nil
}

func (r *memQueryRepo) Update(ctx context.Context, q *SavedQuery) error {
	r.queries[q.ID] = q
	return nil
}

func (r *memQueryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.queries, id)
	return nil
}

func (r *memQueryRepo) List(ctx context.Context) ([]*SavedQuery, error) {
	var out []*SavedQuery
	for _, q := range r.queries {
		out = append(out, q)
	}
	return out, nil
}

func (r *memQueryRepo) MarkExecuted(ctx context.Context, id uuid.UUID) error {
	q, ok := r.queries[id]
	if !ok {
		return fmt.Errorf("saved query not found")
	}
	q.UsageCount++
	now := time.Now()
	q.LastRunAt = &now
	return nil
}

type fakeExecutor struct {
	lastCfg   extdb.Config
	lastQuery string
	result    *extdb.Result
	err       error
}

func (f *fakeExecutor) Test(ctx context.Context, cfg extdb.Config) error {
	f.lastCfg = cfg
	return f.err
}

func (f *fakeExecutor) Run(ctx context.Context, cfg extdb.Config, query string) (*extdb.Result, error) {
	f.lastCfg = cfg
	f.lastQuery = query
	return f.result, f.err
}

func (f *fakeExecutor) ListDatabases(ctx context.Context, cfg extdb.Config) ([]string, error) {
	return []string{"clinic"}, f.err
}

func (f *fakeExecutor) ListTables(ctx context.Context, cfg extdb.Config) ([]string, error) {
	return []string{"patients"}, f.err
}

func newTestService(exec Executor) (*Service, *memConnRepo, *memQueryRepo) {
	conns := newMemConnRepo()
	queries := newMemQueryRepo()
	svc := NewService(conns, queries, exec, time.Second, zerolog.Nop())
	return svc, conns, queries
}

func seedConnection(t *testing.T, svc *Service) *DataConnection {
	t.Helper()
	conn := &DataConnection{
		Name:         "analytics",
		Host:         "10.0.0.5",
		Port:         3306,
		DatabaseName: "warehouse",
		Username:     "reader",
		Password:     "s3cret",
	}
	if err := svc.CreateConnection(context.Background(), conn); err != nil {
		t.Fatalf("CreateConnection: %v", err)
	}
	return conn
}

func TestRunConnectionQueryVerifiesPassword(t *testing.T) {
	exec := &fakeExecutor{result: &extdb.Result{RowCount: 1}}
	svc, _, _ := newTestService(exec)
	conn := seedConnection(t, svc)

	_, err := svc.RunConnectionQuery(context.Background(), conn.ID, "wrong", "SELECT 1")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
	if exec.lastQuery != "" {
		t.Error("query must not execute on password mismatch")
	}

	res, err := svc.RunConnectionQuery(context.Background(), conn.ID, "s3cret", "SELECT 1")
	if err != nil {
		t.Fatalf("RunConnectionQuery: %v", err)
	}
	if res.RowCount != 1 {
		t.Errorf("RowCount = %d", res.RowCount)
	}
	if exec.lastCfg.Host != "10.0.0.5" || exec.lastCfg.Database != "warehouse" {
		t.Errorf("executor got cfg %+v", exec.lastCfg)
	}
}

func TestRunAdhocQueryAppliesDenylist(t *testing.T) {
	exec := &fakeExecutor{result: &extdb.Result{}}
	svc, _, _ := newTestService(exec)

	_, err := svc.RunAdhocQuery(context.Background(), AdhocQueryRequest{
		Host: "h", Port: 3306, Database: "d", Username: "u",
		Query: "DROP TABLE patients",
	})
	if err == nil {
		t.Fatal("expected denylist rejection")
	}
	if exec.lastQuery != "" {
		t.Error("denied statement must not reach the executor")
	}

	_, err = svc.RunAdhocQuery(context.Background(), AdhocQueryRequest{
		Host: "h", Port: 3306, Database: "d", Username: "u",
		Query: "SELECT * FROM patients",
	})
	if err != nil {
		t.Fatalf("RunAdhocQuery: %v", err)
	}
	if exec.lastQuery != "SELECT * FROM patients" {
		t.Errorf("executor query = %q", exec.lastQuery)
	}
}

func TestExecuteSavedQueryBumpsUsage(t *testing.T) {
	exec := &fakeExecutor{result: &extdb.Result{RowCount: 3}}
	svc, _, queries := newTestService(exec)
	conn := seedConnection(t, svc)

	q := &SavedQuery{ConnectionID: conn.ID, Name: "monthly revenue", SQLText: "SELECT SUM(amount) FROM invoices"}
	if err := svc.CreateSavedQuery(context.Background(), q); err != nil {
		t.Fatalf("CreateSavedQuery: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.ExecuteSavedQuery(context.Background(), q.ID); err != nil {
			t.Fatalf("ExecuteSavedQuery: %v", err)
		}
	}

	stored := queries.queries[q.ID]
	if stored.UsageCount != 2 {
		t.Errorf("UsageCount = %d, want 2", stored.UsageCount)
	}
	if stored.LastRunAt == nil {
		t.Error("LastRunAt should be set")
	}
	if exec.lastQuery != q.SQLText {
		t.Errorf("executor ran %q", exec.lastQuery)
	}
}

func TestExecuteSavedQueryFailureDoesNotBumpUsage(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("connection refused")}
	svc, _, queries := newTestService(exec)
	conn := seedConnection(t, svc)

	q := &SavedQuery{ConnectionID: conn.ID, Name: "broken", SQLText: "SELECT 1"}
	if err := svc.CreateSavedQuery(context.Background(), q); err != nil {
		t.Fatalf("CreateSavedQuery: %v", err)
	}

	if _, err := svc.ExecuteSavedQuery(context.Background(), q.ID); err == nil {
		t.Fatal("expected execution error")
	}
	if queries.queries[q.ID].UsageCount != 0 {
		t.Errorf("UsageCount = %d, want 0 after failure", queries.queries[q.ID].UsageCount)
	}
}

func TestCreateSavedQueryRequiresSQL(t *testing.T) {
	svc, _, _ := newTestService(&fakeExecutor{})
	conn := seedConnection(t, svc)

	err := svc.CreateSavedQuery(context.Background(), &SavedQuery{
		ConnectionID: conn.ID,
		Name:         "empty",
		SQLText:      "   ",
	})
	if err == nil {
		t.Fatal("expected error for blank sql_text")
	}
}

func TestValidateConnectionDefaultsEngine(t *testing.T) {
	svc, _, _ := newTestService(&fakeExecutor{})
	conn := seedConnection(t, svc)
	if conn.Engine != "mariadb" {
		t.Errorf("engine = %q, want mariadb default", conn.Engine)
	}

	err := svc.CreateConnection(context.Background(), &DataConnection{Name: "x"})
	if err == nil {
		t.Fatal("expected validation error for missing host/port")
	}
}
