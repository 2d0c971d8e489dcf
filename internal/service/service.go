// Package service implements the call-center API against in-memory state.
// Every operation follows the same shape: simulated latency, session and
// permission checks, one uninterrupted mutation, exactly one audit record,
// optional notifications, then a sync event for subscribers.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/audit"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/auth"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/config"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/notify"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/permission"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/seed"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/sla"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/storage"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// session is the single active authentication context. A new login replaces
// it silently; the service models one active actor, not multiple sessions.
type session struct {
	UserID   string
	Role     types.Role
	BranchID string
}

// Service owns every collection. No entity leaves by reference: methods
// return value copies, so callers hold snapshots, never live records.
type Service struct {
	mu sync.Mutex

	users         []types.User
	branches      []types.Branch
	agents        []types.Agent
	conversations []types.Conversation
	tasks         []types.Task
	reports       []types.Report
	escalations   []types.Escalation

	session *session

	latencyBase     time.Duration
	latencyVariance time.Duration

	// replyDelay decides how long a simulated customer waits before
	// answering an agent message. Overridable in tests.
	replyDelay  func() time.Duration
	replyTimers map[string]*time.Timer
	closed      bool

	auditLog *audit.Log
	emitter  *notify.Emitter
	sla      *sla.Tracker
	issuer   *auth.TokenIssuer
	logger   zerolog.Logger
}

// New builds a service seeded with the demo dataset
func New(cfg *config.Config, archive storage.Store, logger zerolog.Logger) *Service {
	ds := seed.Data(time.Now())

	s := &Service{
		users:           ds.Users,
		branches:        ds.Branches,
		agents:          ds.Agents,
		conversations:   ds.Conversations,
		tasks:           ds.Tasks,
		reports:         ds.Reports,
		escalations:     ds.Escalations,
		latencyBase:     cfg.LatencyBase,
		latencyVariance: cfg.LatencyVariance,
		replyTimers:     make(map[string]*time.Timer),
		auditLog:        audit.NewLog(cfg.AuditLogCap, archive, logger),
		emitter:         notify.NewEmitter(logger),
		sla:             sla.NewTracker(),
		issuer:          auth.NewTokenIssuer(cfg.JWTSecret, 0),
		logger:          logger.With().Str("component", "service").Logger(),
	}

	min, max := cfg.ReplyMinDelay, cfg.ReplyMaxDelay
	s.replyDelay = func() time.Duration {
		if max <= min {
			return min
		}
		return min + time.Duration(rand.Int63n(int64(max-min)))
	}

	// SLA due times are computed once, here, and never re-checked by a
	// timer. Breach flags only move when a caller asks via CheckSLA.
	s.sla.Init(ds.Conversations)

	return s
}

// Emitter exposes the notification emitter so transports can subscribe to
// sync events
func (s *Service) Emitter() *notify.Emitter { return s.emitter }

// Audit exposes the audit log for read-side consumers
func (s *Service) Audit() *audit.Log { return s.auditLog }

// TokenIssuer exposes the issuer so the HTTP layer can verify tokens minted
// at login
func (s *Service) TokenIssuer() *auth.TokenIssuer { return s.issuer }

// SetLatency tunes the simulated latency at runtime, process-wide
func (s *Service) SetLatency(base, variance time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if base < 0 {
		base = 0
	}
	if variance < 0 {
		variance = 0
	}
	s.latencyBase = base
	s.latencyVariance = variance
}

// Close stops every pending simulated-reply timer. Operations on a closed
// service still answer; only detached timers are cancelled.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.replyTimers {
		timer.Stop()
		delete(s.replyTimers, id)
	}
}

// wait simulates network latency. A cancelled context only skips the rest of
// the delay; the operation itself always runs (nothing here is cancellable).
func (s *Service) wait(ctx context.Context) {
	s.mu.Lock()
	d := s.latencyBase
	if s.latencyVariance > 0 {
		d += time.Duration(rand.Int63n(int64(s.latencyVariance)))
	}
	s.mu.Unlock()

	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// changes accumulates the ids touched by one operation for the sync event
type changes struct {
	conversations []string
	tasks         []string
	escalations   []string
	notifications []string
}

func (c *changes) empty() bool {
	return len(c.conversations) == 0 && len(c.tasks) == 0 &&
		len(c.escalations) == 0 && len(c.notifications) == 0
}

// publish fans the change batch out to subscribers. Called after the mutex
// is released so a subscriber may call back into the service.
func (s *Service) publish(ch changes) {
	event := types.SyncEvent{
		LastSyncAt: time.Now(),
		Changes: types.SyncChanges{
			Conversations: emptyNotNil(ch.conversations),
			Tasks:         emptyNotNil(ch.tasks),
			Escalations:   emptyNotNil(ch.escalations),
			Notifications: emptyNotNil(ch.notifications),
		},
		OnlineUsers: s.onlineUsers(),
	}
	s.emitter.Publish(event)
}

func emptyNotNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// onlineUsers lists the user ids of agents currently not offline
func (s *Service) onlineUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []string{}
	for _, a := range s.agents {
		if a.Status != types.AgentOffline {
			out = append(out, a.UserID)
		}
	}
	return out
}

// requireSession and requirePermission must be called with s.mu held.

func (s *Service) requireSession() (*session, *types.Response) {
	if s.session == nil {
		resp := types.Fail(types.ErrNoSession, "no active session, log in first")
		return nil, &resp
	}
	return s.session, nil
}

func (s *Service) requirePermission(resource types.Resource, action types.Action) (*session, *types.Response) {
	sess, fail := s.requireSession()
	if fail != nil {
		return nil, fail
	}
	if !permission.Allows(sess.Role, resource, action) {
		resp := types.Fail(types.ErrPermissionDenied, "role "+string(sess.Role)+" may not "+string(action)+" "+string(resource))
		return nil, &resp
	}
	return sess, nil
}

// notifyUser creates a notification inside a mutation and tracks its id.
// Must be called with s.mu held; the emitter has its own lock.
func (s *Service) notifyUser(ch *changes, userID string, notifType types.NotificationType, title, message string, metadata map[string]string) {
	n := s.emitter.Create(userID, notifType, title, message, metadata)
	ch.notifications = append(ch.notifications, n.ID)
}

// branchManagerID resolves who gets branch-scoped notifications: the first
// branch_manager user in the branch, or the fixed admin when none exists.
// Must be called with s.mu held.
func (s *Service) branchManagerID(branchID string) string {
	for _, u := range s.users {
		if u.Role == types.RoleBranchManager && u.BranchID == branchID {
			return u.ID
		}
	}
	return seed.AdminUserID
}

// Lookup helpers, all under s.mu. They return slice indexes so callers can
// mutate in place; -1 means not found.

func (s *Service) findUserByEmail(email string) int {
	for i := range s.users {
		if s.users[i].Email == email {
			return i
		}
	}
	return -1
}

func (s *Service) findUser(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findConversation(id string) int {
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findAgent(id string) int {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findAgentByUser(userID string) int {
	for i := range s.agents {
		if s.agents[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (s *Service) findBranch(id string) int {
	for i := range s.branches {
		if s.branches[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findTask(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findReport(id string) int {
	for i := range s.reports {
		if s.reports[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findEscalation(id string) int {
	for i := range s.escalations {
		if s.escalations[i].ID == id {
			return i
		}
	}
	return -1
}

// nonTerminalCount counts the conversations that occupy a slot of the
// agent's capacity. Must be called with s.mu held.
func (s *Service) nonTerminalCount(agentID string) int {
	count := 0
	for _, c := range s.conversations {
		if c.AssignedAgentID == agentID && !c.Status.IsTerminal() {
			count++
		}
	}
	return count
}

// paginate slices a full result set and reports the metadata for it
func paginate[T any](items []T, page, limit int) ([]T, types.PageMeta) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], types.PageMeta{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: end < total,
	}
}
