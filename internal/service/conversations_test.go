package service

import (
	"context"
	"testing"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

func listConvs(t *testing.T, resp types.Response) []types.Conversation {
	t.Helper()
	if !resp.Success {
		t.Fatalf("list failed: %+v", resp.Error)
	}
	convs, ok := resp.Data.([]types.Conversation)
	if !ok {
		t.Fatalf("expected []Conversation, got %T", resp.Data)
	}
	return convs
}

func TestListConversationsPagination(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	// The seed holds 14 conversations; the admin sees them all
	page1 := s.ListConversations(ctx, types.ConversationFilter{}, 1, 5)
	convs := listConvs(t, page1)
	if len(convs) != 5 {
		t.Errorf("page 1: expected 5 items, got %d", len(convs))
	}
	if page1.Metadata.Total != 14 {
		t.Errorf("expected total 14, got %d", page1.Metadata.Total)
	}
	if !page1.Metadata.HasMore {
		t.Error("page 1 should have more")
	}

	page3 := s.ListConversations(ctx, types.ConversationFilter{}, 3, 5)
	convs = listConvs(t, page3)
	if len(convs) != 4 {
		t.Errorf("page 3: expected 4 items, got %d", len(convs))
	}
	if page3.Metadata.HasMore {
		t.Error("page 3 should not have more")
	}

	// Past the end: empty page, never an error
	page9 := s.ListConversations(ctx, types.ConversationFilter{}, 9, 5)
	if convs = listConvs(t, page9); len(convs) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(convs))
	}
}

func TestListConversationsSortedByLastMessageDesc(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	convs := listConvs(t, s.ListConversations(context.Background(), types.ConversationFilter{}, 1, 50))
	for i := 1; i < len(convs); i++ {
		if convs[i].LastMessageTime.After(convs[i-1].LastMessageTime) {
			t.Fatalf("conversations not sorted by last message time desc at index %d", i)
		}
	}
}

func TestListConversationsRoleScoping(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// Agents only see their own assignments
	login(t, s, "brian.kip@callcenter.co.ke") // agent-1
	for _, c := range listConvs(t, s.ListConversations(ctx, types.ConversationFilter{}, 1, 50)) {
		if c.AssignedAgentID != "agent-1" {
			t.Errorf("agent saw conversation %s assigned to %q", c.ID, c.AssignedAgentID)
		}
	}

	// Managers only see their branch
	login(t, s, "manager.cbd@callcenter.co.ke")
	for _, c := range listConvs(t, s.ListConversations(ctx, types.ConversationFilter{}, 1, 50)) {
		if c.BranchID != "branch-cbd" {
			t.Errorf("manager saw conversation %s in branch %s", c.ID, c.BranchID)
		}
	}
}

func TestListConversationsStatusFilter(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	convs := listConvs(t, s.ListConversations(context.Background(),
		types.ConversationFilter{Status: types.ConversationNew}, 1, 50))
	if len(convs) == 0 {
		t.Fatal("expected some new conversations in the seed")
	}
	for _, c := range convs {
		if c.Status != types.ConversationNew {
			t.Errorf("filter leaked conversation %s with status %s", c.ID, c.Status)
		}
	}
}

func TestAssignConversation(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	resp := s.AssignConversation(ctx, "conv-1001", "agent-5")
	if !resp.Success {
		t.Fatalf("assign failed: %+v", resp.Error)
	}
	conv := resp.Data.(types.Conversation)
	if conv.AssignedAgentID != "agent-5" {
		t.Errorf("expected agent-5 assigned, got %s", conv.AssignedAgentID)
	}
	if conv.Status != types.ConversationAssigned {
		t.Errorf("expected status assigned, got %s", conv.Status)
	}
}

func TestAssignConversationAtCapacity(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	// agent-5 holds at most 2 chats
	if resp := s.AssignConversation(ctx, "conv-1001", "agent-5"); !resp.Success {
		t.Fatalf("first assign failed: %+v", resp.Error)
	}
	if resp := s.AssignConversation(ctx, "conv-1004", "agent-5"); !resp.Success {
		t.Fatalf("second assign failed: %+v", resp.Error)
	}

	resp := s.AssignConversation(ctx, "conv-1008", "agent-5")
	if resp.Success {
		t.Fatal("expected third assign to fail")
	}
	if resp.Error.Code != types.ErrAgentAtCapacity {
		t.Errorf("expected AGENT_AT_CAPACITY, got %s", resp.Error.Code)
	}

	// The failed assign must not have touched the conversation
	conv := s.GetConversation(ctx, "conv-1008").Data.(types.Conversation)
	if conv.AssignedAgentID == "agent-5" {
		t.Error("failed assign leaked a mutation")
	}
}

func TestTransferSkipsCapacityCheck(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	// Fill agent-5 to capacity, then transfer a third chat anyway
	s.AssignConversation(ctx, "conv-1001", "agent-5")
	s.AssignConversation(ctx, "conv-1004", "agent-5")

	resp := s.TransferConversation(ctx, "conv-1002", "agent-5", "coverage gap")
	if !resp.Success {
		t.Fatalf("transfer should ignore capacity, got %+v", resp.Error)
	}
	conv := resp.Data.(types.Conversation)
	if conv.AssignedAgentID != "agent-5" {
		t.Errorf("expected agent-5 after transfer, got %s", conv.AssignedAgentID)
	}
}

func TestTransferAuditsOldAndNewAgent(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	s.TransferConversation(context.Background(), "conv-1002", "agent-2", "rebalancing")

	newest := s.Audit().Query(types.AuditFilter{ActionType: types.ActionConversationXfer}, 1)
	if len(newest) != 1 {
		t.Fatal("expected a transfer audit event")
	}
	if newest[0].Metadata["oldAgentId"] != "agent-1" || newest[0].Metadata["newAgentId"] != "agent-2" {
		t.Errorf("expected old/new agent ids in metadata, got %v", newest[0].Metadata)
	}
}

func TestPermissionDeniedPerformsZeroMutation(t *testing.T) {
	s := newTestService(t)
	login(t, s, "brian.kip@callcenter.co.ke") // agent: may not assign
	ctx := context.Background()

	before := s.GetConversation(ctx, "conv-1001").Data.(types.Conversation)
	auditBefore := s.Audit().Size()

	resp := s.AssignConversation(ctx, "conv-1001", "agent-1")
	if resp.Success {
		t.Fatal("expected assign to be denied for agent role")
	}
	if resp.Error.Code != types.ErrPermissionDenied {
		t.Errorf("expected PERMISSION_DENIED, got %s", resp.Error.Code)
	}

	after := s.GetConversation(ctx, "conv-1001").Data.(types.Conversation)
	if after.AssignedAgentID != before.AssignedAgentID || after.Status != before.Status {
		t.Error("denied call mutated the conversation")
	}
	if s.Audit().Size() != auditBefore {
		t.Error("denied call wrote an audit event")
	}
}

func TestUpdateConversationAcceptsAnyStatus(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	status := types.ConversationClosed
	resp := s.UpdateConversation(context.Background(), "conv-1001", ConversationUpdate{Status: &status})
	if !resp.Success {
		t.Fatalf("update failed: %+v", resp.Error)
	}
	if resp.Data.(types.Conversation).Status != types.ConversationClosed {
		t.Error("status update was not applied")
	}
}

func TestSendMessageAppendsAndSchedulesReply(t *testing.T) {
	s := newTestService(t)
	result := login(t, s, "brian.kip@callcenter.co.ke")
	ctx := context.Background()

	before := s.GetConversation(ctx, "conv-1002").Data.(types.Conversation)

	resp := s.SendMessage(ctx, "conv-1002", "Hello, how can I help?", "")
	if !resp.Success {
		t.Fatalf("send failed: %+v", resp.Error)
	}
	conv := resp.Data.(types.Conversation)
	if len(conv.Messages) != len(before.Messages)+1 {
		t.Fatalf("expected one appended message, got %d -> %d", len(before.Messages), len(conv.Messages))
	}
	last := conv.Messages[len(conv.Messages)-1]
	if last.SenderType != types.SenderAgent || last.SenderID != result.User.ID {
		t.Errorf("expected agent-authored message, got %+v", last)
	}
	if conv.LastMessage != "Hello, how can I help?" {
		t.Errorf("lastMessage not updated: %s", conv.LastMessage)
	}
	if !conv.LastMessageTime.Equal(last.Timestamp) {
		t.Error("lastMessageTime should match the appended message")
	}

	// The simulated customer answers after the (shortened) delay
	deadline := time.Now().Add(time.Second)
	for {
		conv = s.GetConversation(ctx, "conv-1002").Data.(types.Conversation)
		if len(conv.Messages) == len(before.Messages)+2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("simulated customer reply never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
	reply := conv.Messages[len(conv.Messages)-1]
	if reply.SenderType != types.SenderCustomer {
		t.Errorf("expected customer reply, got %s", reply.SenderType)
	}
	if conv.UnreadCount != before.UnreadCount+1 {
		t.Errorf("expected unread count %d, got %d", before.UnreadCount+1, conv.UnreadCount)
	}
}

func TestSimulatedReplySkippedWhenConversationClosed(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	resp := s.SendMessage(ctx, "conv-1003", "Closing this out.", "")
	if !resp.Success {
		t.Fatalf("send failed: %+v", resp.Error)
	}
	sent := resp.Data.(types.Conversation)

	// Close the conversation before the reply timer fires
	status := types.ConversationClosed
	if resp := s.UpdateConversation(ctx, "conv-1003", ConversationUpdate{Status: &status}); !resp.Success {
		t.Fatalf("close failed: %+v", resp.Error)
	}

	deadline := time.Now().Add(time.Second)
	for s.PendingReplies() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("reply timer never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conv := s.GetConversation(ctx, "conv-1003").Data.(types.Conversation)
	if len(conv.Messages) != len(sent.Messages) {
		t.Errorf("closed conversation received a reply: %d -> %d messages", len(sent.Messages), len(conv.Messages))
	}
}

func TestSendMessageValidation(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")
	ctx := context.Background()

	if resp := s.SendMessage(ctx, "conv-1001", "", ""); resp.Success || resp.Error.Code != types.ErrValidation {
		t.Error("expected VALIDATION_ERROR for empty content")
	}
	if resp := s.SendMessage(ctx, "conv-missing", "hi", ""); resp.Success || resp.Error.Code != types.ErrConversationNotFound {
		t.Error("expected CONVERSATION_NOT_FOUND")
	}
}

func TestCloseStopsPendingReplyTimers(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	s.SendMessage(context.Background(), "conv-1001", "anyone there?", "")

	s.Close()
	if s.PendingReplies() != 0 {
		t.Errorf("expected no pending replies after Close, got %d", s.PendingReplies())
	}
}
