package service

import (
	"context"
	"testing"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	s := newTestService(t)
	login(t, s, "manager.cbd@callcenter.co.ke")

	resp := s.CreateTask(context.Background(), TaskInput{
		Title:      "Call back VIP customer",
		BranchID:   "branch-cbd",
		AssignedTo: "user-agent-1",
		Priority:   types.PriorityHigh,
		DueDate:    time.Now().Add(8 * time.Hour),
	})
	if !resp.Success {
		t.Fatalf("create task failed: %+v", resp.Error)
	}
	task := resp.Data.(types.Task)
	if task.Status != types.TaskPending {
		t.Errorf("expected pending, got %s", task.Status)
	}
	if task.AssignedBy != "user-mgr-cbd" {
		t.Errorf("expected assignedBy user-mgr-cbd, got %s", task.AssignedBy)
	}

	notifs := s.Emitter().List("user-agent-1")
	if len(notifs) == 0 || notifs[0].Type != types.NotifyTaskAssigned {
		t.Error("expected a task_assigned notification for the assignee")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestService(t)
	login(t, s, "manager.cbd@callcenter.co.ke")
	ctx := context.Background()

	if resp := s.CreateTask(ctx, TaskInput{AssignedTo: "user-agent-1"}); resp.Success || resp.Error.Code != types.ErrValidation {
		t.Error("expected VALIDATION_ERROR without a title")
	}
	if resp := s.CreateTask(ctx, TaskInput{Title: "x", AssignedTo: "user-nobody"}); resp.Success || resp.Error.Code != types.ErrUserNotFound {
		t.Error("expected USER_NOT_FOUND for unknown assignee")
	}
	if resp := s.CreateTask(ctx, TaskInput{Title: "x", AssignedTo: "user-agent-1", BranchID: "branch-nowhere"}); resp.Success || resp.Error.Code != types.ErrBranchNotFound {
		t.Error("expected BRANCH_NOT_FOUND for unknown branch")
	}
}

func TestListTasksOrderedByPriorityThenDueDate(t *testing.T) {
	s := newTestService(t)
	login(t, s, "admin@callcenter.co.ke")

	resp := s.ListTasks(context.Background())
	if !resp.Success {
		t.Fatalf("list failed: %+v", resp.Error)
	}
	tasks := resp.Data.([]types.Task)
	if len(tasks) < 4 {
		t.Fatalf("expected the seeded tasks, got %d", len(tasks))
	}

	for i := 1; i < len(tasks); i++ {
		prev, cur := tasks[i-1], tasks[i]
		if cur.Priority.Rank() > prev.Priority.Rank() {
			t.Fatalf("tasks out of priority order at %d: %s before %s", i, prev.Priority, cur.Priority)
		}
		if cur.Priority.Rank() == prev.Priority.Rank() && cur.DueDate.Before(prev.DueDate) {
			t.Fatalf("tasks with equal priority out of due-date order at %d", i)
		}
	}
	if tasks[0].Priority != types.PriorityUrgent {
		t.Errorf("expected the urgent task first, got %s", tasks[0].Priority)
	}
}

func TestListTasksAgentScope(t *testing.T) {
	s := newTestService(t)
	login(t, s, "brian.kip@callcenter.co.ke")

	resp := s.ListTasks(context.Background())
	if !resp.Success {
		t.Fatalf("list failed: %+v", resp.Error)
	}
	for _, task := range resp.Data.([]types.Task) {
		if task.AssignedTo != "user-agent-1" {
			t.Errorf("agent saw a task assigned to %s", task.AssignedTo)
		}
	}
}

func TestUpdateTaskStatusSetsCompletedAt(t *testing.T) {
	s := newTestService(t)
	login(t, s, "brian.kip@callcenter.co.ke")
	ctx := context.Background()

	resp := s.UpdateTaskStatus(ctx, "task-1", types.TaskCompleted)
	if !resp.Success {
		t.Fatalf("update failed: %+v", resp.Error)
	}
	task := resp.Data.(types.Task)
	if task.CompletedAt == nil {
		t.Fatal("expected completedAt to be set")
	}

	// Moving away from completed clears the timestamp again
	task = s.UpdateTaskStatus(ctx, "task-1", types.TaskInProgress).Data.(types.Task)
	if task.CompletedAt != nil {
		t.Error("expected completedAt cleared when no longer completed")
	}

	if resp := s.UpdateTaskStatus(ctx, "task-missing", types.TaskCompleted); resp.Success || resp.Error.Code != types.ErrTaskNotFound {
		t.Error("expected TASK_NOT_FOUND")
	}
}

func TestAgentCannotCreateTasks(t *testing.T) {
	s := newTestService(t)
	login(t, s, "brian.kip@callcenter.co.ke")

	resp := s.CreateTask(context.Background(), TaskInput{Title: "x", AssignedTo: "user-agent-2"})
	if resp.Success || resp.Error.Code != types.ErrPermissionDenied {
		t.Error("expected PERMISSION_DENIED for agent creating a task")
	}
}
