package service

import (
	"context"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// ListNotifications returns the session user's notifications, newest first
func (s *Service) ListNotifications(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	sess, fail := s.requirePermission(types.ResourceNotifications, types.ActionRead)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	userID := sess.UserID
	s.mu.Unlock()

	return types.OK(s.emitter.List(userID))
}

// MarkNotificationRead flips one notification's read flag
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	sess, fail := s.requirePermission(types.ResourceNotifications, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	userID := sess.UserID

	if !s.emitter.MarkRead(notificationID) {
		s.mu.Unlock()
		return types.Fail(types.ErrNotificationNotFound, "notification "+notificationID+" not found")
	}
	s.auditLog.Record(types.ActionNotificationRead, userID, types.AuditTargets{},
		map[string]string{"notificationId": notificationID})
	s.mu.Unlock()

	s.publish(changes{notifications: []string{notificationID}})
	return types.OK(nil)
}

// MarkAllNotificationsRead flips every unread notification of the session
// user
func (s *Service) MarkAllNotificationsRead(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	sess, fail := s.requirePermission(types.ResourceNotifications, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	userID := sess.UserID

	count := s.emitter.MarkAllRead(userID)
	s.auditLog.Record(types.ActionNotificationRead, userID, types.AuditTargets{},
		map[string]string{"markedAll": "true"})
	s.mu.Unlock()

	s.publish(changes{})
	return types.OK(map[string]int{"marked": count})
}

// QueryAudit returns audit events matching the filter, newest first
func (s *Service) QueryAudit(ctx context.Context, filter types.AuditFilter, limit int) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	_, fail := s.requirePermission(types.ResourceAudit, types.ActionRead)
	s.mu.Unlock()
	if fail != nil {
		return *fail
	}

	return types.OK(s.auditLog.Query(filter, limit))
}

// GetSLA returns the SLA record computed for a conversation at startup
func (s *Service) GetSLA(ctx context.Context, conversationID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	_, fail := s.requirePermission(types.ResourceConversations, types.ActionRead)
	s.mu.Unlock()
	if fail != nil {
		return *fail
	}

	rec, ok := s.sla.Get(conversationID)
	if !ok {
		return types.Fail(types.ErrConversationNotFound, "no SLA record for conversation "+conversationID)
	}
	return types.OK(rec)
}

// CheckSLA recomputes a conversation's breach flags against the current
// clock. This only happens when a caller asks; no background loop does it.
func (s *Service) CheckSLA(ctx context.Context, conversationID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	_, fail := s.requirePermission(types.ResourceConversations, types.ActionRead)
	s.mu.Unlock()
	if fail != nil {
		return *fail
	}

	rec, ok := s.sla.CheckNow(conversationID, time.Now())
	if !ok {
		return types.Fail(types.ErrConversationNotFound, "no SLA record for conversation "+conversationID)
	}
	return types.OK(rec)
}
