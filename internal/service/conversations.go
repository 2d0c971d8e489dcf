package service

import (
	"context"
	"sort"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// ConversationUpdate carries the optional fields UpdateConversation may set.
// Status transitions are not validated as a state machine: any requested
// update is accepted.
type ConversationUpdate struct {
	Status   *types.ConversationStatus `json:"status,omitempty"`
	Priority *types.Priority           `json:"priority,omitempty"`
	Tags     []string                  `json:"tags,omitempty"`
}

// ListConversations returns conversations visible to the session role,
// narrowed by the filter, newest activity first, paginated.
func (s *Service) ListConversations(ctx context.Context, filter types.ConversationFilter, page, limit int) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requirePermission(types.ResourceConversations, types.ActionRead)
	if fail != nil {
		return *fail
	}

	// Role scoping comes before the caller's filter: admins see all,
	// managers their branch, agents only their own assignments.
	scopeAgent := ""
	scopeBranch := ""
	switch sess.Role {
	case types.RoleBranchManager:
		scopeBranch = sess.BranchID
	case types.RoleAgent:
		if i := s.findAgentByUser(sess.UserID); i >= 0 {
			scopeAgent = s.agents[i].ID
		} else {
			scopeAgent = "none"
		}
	}

	matched := make([]types.Conversation, 0)
	for _, c := range s.conversations {
		if scopeBranch != "" && c.BranchID != scopeBranch {
			continue
		}
		if scopeAgent != "" && c.AssignedAgentID != scopeAgent {
			continue
		}
		if filter.BranchID != "" && c.BranchID != filter.BranchID {
			continue
		}
		if filter.AgentID != "" && c.AssignedAgentID != filter.AgentID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LastMessageTime.After(matched[j].LastMessageTime)
	})

	pageItems, meta := paginate(matched, page, limit)
	return types.OKPage(pageItems, meta)
}

// GetConversation returns a single conversation snapshot
func (s *Service) GetConversation(ctx context.Context, id string) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, fail := s.requirePermission(types.ResourceConversations, types.ActionRead); fail != nil {
		return *fail
	}
	idx := s.findConversation(id)
	if idx == -1 {
		return types.Fail(types.ErrConversationNotFound, "conversation "+id+" not found")
	}
	return types.OK(s.conversations[idx])
}

// UpdateConversation applies the requested fields and audits the change
func (s *Service) UpdateConversation(ctx context.Context, id string, update ConversationUpdate) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceConversations, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findConversation(id)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrConversationNotFound, "conversation "+id+" not found")
	}

	meta := map[string]string{}
	if update.Status != nil {
		meta["oldStatus"] = string(s.conversations[idx].Status)
		meta["newStatus"] = string(*update.Status)
		s.conversations[idx].Status = *update.Status
	}
	if update.Priority != nil {
		s.conversations[idx].Priority = *update.Priority
	}
	if update.Tags != nil {
		s.conversations[idx].Tags = update.Tags
	}

	s.auditLog.Record(types.ActionConversationUpdated, sess.UserID, types.AuditTargets{ConversationID: id}, meta)
	conv := s.conversations[idx]
	s.mu.Unlock()

	s.publish(changes{conversations: []string{id}})
	return types.OK(conv)
}

// AssignConversation routes a conversation to an agent. Fails with
// AGENT_AT_CAPACITY when the agent's non-terminal conversations already
// fill the agent's capacity.
func (s *Service) AssignConversation(ctx context.Context, conversationID, agentID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceConversations, types.ActionAssign)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	convIdx := s.findConversation(conversationID)
	if convIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrConversationNotFound, "conversation "+conversationID+" not found")
	}
	agentIdx := s.findAgent(agentID)
	if agentIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrAgentNotFound, "agent "+agentID+" not found")
	}

	agent := s.agents[agentIdx]
	if s.nonTerminalCount(agentID) >= agent.MaxChats {
		s.mu.Unlock()
		return types.Fail(types.ErrAgentAtCapacity, agent.Name+" already handles the maximum number of chats")
	}

	s.conversations[convIdx].AssignedAgentID = agentID
	s.conversations[convIdx].Status = types.ConversationAssigned
	s.agents[agentIdx].ActiveChats = s.nonTerminalCount(agentID)

	s.auditLog.Record(types.ActionConversationAssign, sess.UserID,
		types.AuditTargets{ConversationID: conversationID, AgentID: agentID}, nil)

	ch := changes{conversations: []string{conversationID}}
	s.notifyUser(&ch, agent.UserID, types.NotifyConversationAssigned,
		"Conversation assigned",
		"You were assigned the chat with "+s.conversations[convIdx].CustomerName,
		map[string]string{"conversationId": conversationID})

	conv := s.conversations[convIdx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(conv)
}

// TransferConversation reassigns a conversation to another agent. Unlike
// AssignConversation there is no capacity check: a transfer is treated as a
// manager-forced override.
func (s *Service) TransferConversation(ctx context.Context, conversationID, newAgentID, reason string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceConversations, types.ActionTransfer)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	convIdx := s.findConversation(conversationID)
	if convIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrConversationNotFound, "conversation "+conversationID+" not found")
	}
	agentIdx := s.findAgent(newAgentID)
	if agentIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrAgentNotFound, "agent "+newAgentID+" not found")
	}

	oldAgentID := s.conversations[convIdx].AssignedAgentID
	s.conversations[convIdx].AssignedAgentID = newAgentID
	if s.conversations[convIdx].Status == types.ConversationNew {
		s.conversations[convIdx].Status = types.ConversationAssigned
	}
	if oldIdx := s.findAgent(oldAgentID); oldIdx >= 0 {
		s.agents[oldIdx].ActiveChats = s.nonTerminalCount(oldAgentID)
	}
	s.agents[agentIdx].ActiveChats = s.nonTerminalCount(newAgentID)

	meta := map[string]string{"oldAgentId": oldAgentID, "newAgentId": newAgentID}
	if reason != "" {
		meta["reason"] = reason
	}
	s.auditLog.Record(types.ActionConversationXfer, sess.UserID,
		types.AuditTargets{ConversationID: conversationID, AgentID: newAgentID}, meta)

	ch := changes{conversations: []string{conversationID}}
	s.notifyUser(&ch, s.agents[agentIdx].UserID, types.NotifyConversationTransferred,
		"Conversation transferred to you",
		"The chat with "+s.conversations[convIdx].CustomerName+" was transferred to you",
		map[string]string{"conversationId": conversationID})

	conv := s.conversations[convIdx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(conv)
}

// SendMessage appends an agent message and schedules a simulated customer
// reply after a randomized delay. The reply runs detached from this call.
func (s *Service) SendMessage(ctx context.Context, conversationID, content, taskID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceMessages, types.ActionCreate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	convIdx := s.findConversation(conversationID)
	if convIdx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrConversationNotFound, "conversation "+conversationID+" not found")
	}
	if content == "" {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "message content must not be empty")
	}

	now := time.Now()
	msg := types.Message{
		ID:             types.NewID("msg"),
		ConversationID: conversationID,
		SenderType:     types.SenderAgent,
		SenderID:       sess.UserID,
		Content:        content,
		Timestamp:      now,
	}
	s.conversations[convIdx].Messages = append(s.conversations[convIdx].Messages, msg)
	s.conversations[convIdx].LastMessage = content
	s.conversations[convIdx].LastMessageTime = now

	meta := map[string]string{}
	if taskID != "" {
		meta["taskId"] = taskID
	}
	s.auditLog.Record(types.ActionMessageSent, sess.UserID,
		types.AuditTargets{ConversationID: conversationID, TaskID: taskID}, meta)

	if !s.closed {
		s.scheduleReply(conversationID)
	}

	conv := s.conversations[convIdx]
	s.mu.Unlock()

	s.publish(changes{conversations: []string{conversationID}})
	return types.OK(conv)
}

// scheduleReply arms a detached timer that appends a simulated customer
// reply. Must be called with s.mu held.
func (s *Service) scheduleReply(conversationID string) {
	timerID := types.NewID("reply")
	delay := s.replyDelay()
	s.replyTimers[timerID] = time.AfterFunc(delay, func() {
		s.deliverReply(timerID, conversationID)
	})
}

// deliverReply runs on the timer goroutine. The reply is dropped when the
// service is closed or the conversation was closed in the meantime.
func (s *Service) deliverReply(timerID, conversationID string) {
	s.mu.Lock()
	delete(s.replyTimers, timerID)

	if s.closed {
		s.mu.Unlock()
		return
	}
	convIdx := s.findConversation(conversationID)
	if convIdx == -1 || s.conversations[convIdx].Status == types.ConversationClosed {
		s.mu.Unlock()
		return
	}

	now := time.Now()
	content := "Asante, let me check and get back to you."
	msg := types.Message{
		ID:             types.NewID("msg"),
		ConversationID: conversationID,
		SenderType:     types.SenderCustomer,
		Content:        content,
		Timestamp:      now,
	}
	s.conversations[convIdx].Messages = append(s.conversations[convIdx].Messages, msg)
	s.conversations[convIdx].LastMessage = content
	s.conversations[convIdx].LastMessageTime = now
	s.conversations[convIdx].UnreadCount++
	s.mu.Unlock()

	s.publish(changes{conversations: []string{conversationID}})
}

// PendingReplies reports how many simulated replies are still scheduled
func (s *Service) PendingReplies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replyTimers)
}
