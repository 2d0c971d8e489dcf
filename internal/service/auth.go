package service

import (
	"context"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/seed"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// Login authenticates by email. The check is deliberately permissive: any
// password works for a registered email (no real credential store exists),
// and the sentinel password logs an unregistered email in as a transient
// demo agent. A successful login replaces any existing session.
func (s *Service) Login(ctx context.Context, email, password string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	idx := s.findUserByEmail(email)
	if idx == -1 && password != seed.SentinelPassword {
		s.mu.Unlock()
		return types.Fail(types.ErrInvalidCredentials, "invalid email or password")
	}

	var user types.User
	if idx >= 0 {
		user = s.users[idx]
	} else {
		user = types.User{
			ID:        types.NewID("user"),
			Email:     email,
			Name:      email,
			Role:      types.RoleAgent,
			BranchID:  seed.DefaultBranchID,
			Status:    types.UserActive,
			CreatedAt: time.Now(),
		}
		s.users = append(s.users, user)
	}

	s.session = &session{UserID: user.ID, Role: user.Role, BranchID: user.BranchID}
	s.auditLog.Record(types.ActionLogin, user.ID, types.AuditTargets{}, map[string]string{"email": email})

	token, err := s.issuer.Mint(user)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to mint session token")
		return types.Fail(types.ErrUnknown, "failed to create session token")
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	s.publish(changes{})

	return types.OK(types.LoginResult{User: user, Token: token})
}

// Logout clears the current session. Calls that need a session fail with
// NO_SESSION until the next login.
func (s *Service) Logout(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	sess, fail := s.requireSession()
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}

	s.auditLog.Record(types.ActionLogout, sess.UserID, types.AuditTargets{}, nil)
	s.session = nil
	s.mu.Unlock()

	s.publish(changes{})
	return types.OK(nil)
}

// CurrentUser returns the user behind the active session
func (s *Service) CurrentUser(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requireSession()
	if fail != nil {
		return *fail
	}
	idx := s.findUser(sess.UserID)
	if idx == -1 {
		return types.Fail(types.ErrUserNotFound, "session user no longer exists")
	}
	return types.OK(s.users[idx])
}
