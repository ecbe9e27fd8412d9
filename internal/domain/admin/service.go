package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/extdb"
)

// ErrPasswordMismatch is returned when the re-supplied connection password
// does not match the stored one.
var ErrPasswordMismatch = errors.New("connection password mismatch")

// Executor abstracts the ephemeral secondary-database calls so tests can
// substitute a fake without a live MariaDB.
type Executor interface {
	Test(ctx context.Context, cfg extdb.Config) error
	Run(ctx context.Context, cfg extdb.Config, query string) (*extdb.Result, error)
	ListDatabases(ctx context.Context, cfg extdb.Config) ([]string, error)
	ListTables(ctx context.Context, cfg extdb.Config) ([]string, error)
}

type liveExecutor struct{}

func (liveExecutor) Test(ctx context.Context, cfg extdb.Config) error { return extdb.Test(ctx, cfg) }
func (liveExecutor) Run(ctx context.Context, cfg extdb.Config, query string) (*extdb.Result, error) {
	return extdb.Run(ctx, cfg, query)
}
func (liveExecutor) ListDatabases(ctx context.Context, cfg extdb.Config) ([]string, error) {
	return extdb.ListDatabases(ctx, cfg)
}
func (liveExecutor) ListTables(ctx context.Context, cfg extdb.Config) ([]string, error) {
	return extdb.ListTables(ctx, cfg)
}

// NewLiveExecutor returns the production Executor backed by real ephemeral
// connections.
func NewLiveExecutor() Executor { return liveExecutor{} }

type Service struct {
	conns   ConnectionRepository
	queries SavedQueryRepository
	exec    Executor
	timeout time.Duration
	logger  zerolog.Logger
}

func NewService(conns ConnectionRepository, queries SavedQueryRepository, exec Executor, timeout time.Duration, logger zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{conns: conns, queries: queries, exec: exec, timeout: timeout, logger: logger}
}

func connConfig(conn *DataConnection) extdb.Config {
	return extdb.Config{
		Host:     conn.Host,
		Port:     conn.Port,
		Database: conn.DatabaseName,
		Username: conn.Username,
		Password: conn.Password,
		Engine:   conn.Engine,
	}
}

func (s *Service) CreateConnection(ctx context.Context, conn *DataConnection) error {
	if err := validateConnection(conn); err != nil {
		return err
	}
	return s.conns.Create(ctx, conn)
}

func (s *Service) GetConnection(ctx context.Context, id uuid.UUID) (*DataConnection, error) {
	return s.conns.GetByID(ctx, id)
}

func (s *Service) UpdateConnection(ctx context.Context, conn *DataConnection) error {
	if err := validateConnection(conn); err != nil {
		return err
	}
	return s.conns.Update(ctx, conn)
}

func (s *Service) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	return s.conns.Delete(ctx, id)
}

func (s *Service) ListConnections(ctx context.Context) ([]*DataConnection, error) {
	return s.conns.List(ctx)
}

func validateConnection(conn *DataConnection) error {
	if strings.TrimSpace(conn.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if conn.Host == "" || conn.Port <= 0 {
		return fmt.Errorf("host and port are required")
	}
	if conn.Username == "" || conn.DatabaseName == "" {
		return fmt.Errorf("username and database_name are required")
	}
	if conn.Engine == "" {
		conn.Engine = "mariadb"
	}
	return nil
}

// TestConnection opens and closes one connection with the stored credentials.
func (s *Service) TestConnection(ctx context.Context, id uuid.UUID) error {
	conn, err := s.conns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.exec.Test(ctx, connConfig(conn))
}

// RunConnectionQuery executes one statement over a stored connection. The
// caller must re-supply the connection password; it is compared against the
// stored value before anything touches the network.
func (s *Service) RunConnectionQuery(ctx context.Context, id uuid.UUID, password, query string) (*extdb.Result, error) {
	conn, err := s.conns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conn.Password != password {
		return nil, ErrPasswordMismatch
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.exec.Run(ctx, connConfig(conn), query)
}

// RunAdhocQuery executes one statement with request-supplied parameters. Only
// this path applies the keyword denylist.
func (s *Service) RunAdhocQuery(ctx context.Context, req AdhocQueryRequest) (*extdb.Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if err := extdb.GuardStatement(req.Query); err != nil {
		return nil, err
	}

	cfg := extdb.Config{
		Host:     req.Host,
		Port:     req.Port,
		Database: req.Database,
		Username: req.Username,
		Password: req.Password,
		Engine:   req.EngineName(),
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.exec.Run(ctx, cfg, req.Query)
}

func (s *Service) ListDatabases(ctx context.Context, id uuid.UUID) ([]string, error) {
	conn, err := s.conns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.exec.ListDatabases(ctx, connConfig(conn))
}

func (s *Service) ListTables(ctx context.Context, id uuid.UUID) ([]string, error) {
	conn, err := s.conns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.exec.ListTables(ctx, connConfig(conn))
}

func (s *Service) CreateSavedQuery(ctx context.Context, q *SavedQuery) error {
	if err := validateSavedQuery(q); err != nil {
		return err
	}
	return s.queries.Create(ctx, q)
}

func (s *Service) GetSavedQuery(ctx context.Context, id uuid.UUID) (*SavedQuery, error) {
	return s.queries.GetByID(ctx, id)
}

func (s *Service) UpdateSavedQuery(ctx context.Context, q *SavedQuery) error {
	if err := validateSavedQuery(q); err != nil {
		return err
	}
	return s.queries.Update(ctx, q)
}

func (s *Service) DeleteSavedQuery(ctx context.Context, id uuid.UUID) error {
	return s.queries.Delete(ctx, id)
}

func (s *Service) ListSavedQueries(ctx context.Context) ([]*SavedQuery, error) {
	return s.queries.List(ctx)
}

func validateSavedQuery(q *SavedQuery) error {
	if q.ConnectionID == uuid.Nil {
		return fmt.Errorf("connection_id is required")
	}
	if strings.TrimSpace(q.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(q.SQLText) == "" {
		return fmt.Errorf("sql_text must be non-empty")
	}
	return nil
}

// ExecuteSavedQuery runs a saved statement over its connection, then bumps
// the usage counter. A failed counter update does not fail the execution.
func (s *Service) ExecuteSavedQuery(ctx context.Context, id uuid.UUID) (*extdb.Result, error) {
	q, err := s.queries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	conn, err := s.conns.GetByID(ctx, q.ConnectionID)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.exec.Run(runCtx, connConfig(conn), q.SQLText)
	if err != nil {
		return nil, err
	}

	if err := s.queries.MarkExecuted(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("query_id", id.String()).Msg("failed to bump saved query usage")
	}
	return res, nil
}
