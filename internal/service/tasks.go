package service

import (
	"context"
	"sort"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// TaskInput describes a new task
type TaskInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	BranchID    string         `json:"branchId"`
	AssignedTo  string         `json:"assignedTo"`
	Priority    types.Priority `json:"priority"`
	DueDate     time.Time      `json:"dueDate"`
}

// CreateTask creates a task and notifies its assignee
func (s *Service) CreateTask(ctx context.Context, input TaskInput) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceTasks, types.ActionCreate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	if input.Title == "" {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "task title is required")
	}
	if s.findUser(input.AssignedTo) == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrUserNotFound, "assignee "+input.AssignedTo+" not found")
	}
	if input.BranchID != "" && s.findBranch(input.BranchID) == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrBranchNotFound, "branch "+input.BranchID+" not found")
	}
	if input.Priority == "" {
		input.Priority = types.PriorityNormal
	}

	task := types.Task{
		ID:          types.NewID("task"),
		Title:       input.Title,
		Description: input.Description,
		BranchID:    input.BranchID,
		AssignedTo:  input.AssignedTo,
		AssignedBy:  sess.UserID,
		Status:      types.TaskPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now(),
	}
	s.tasks = append(s.tasks, task)

	s.auditLog.Record(types.ActionTaskCreated, sess.UserID,
		types.AuditTargets{TaskID: task.ID}, map[string]string{"assignedTo": input.AssignedTo})

	ch := changes{tasks: []string{task.ID}}
	s.notifyUser(&ch, input.AssignedTo, types.NotifyTaskAssigned,
		"New task", task.Title, map[string]string{"taskId": task.ID})

	s.mu.Unlock()

	s.publish(ch)
	return types.OK(task)
}

// ListTasks returns tasks visible to the session role, most urgent first and
// earliest due date first within a priority
func (s *Service) ListTasks(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requirePermission(types.ResourceTasks, types.ActionRead)
	if fail != nil {
		return *fail
	}

	out := make([]types.Task, 0)
	for _, t := range s.tasks {
		switch sess.Role {
		case types.RoleBranchManager:
			if t.BranchID != sess.BranchID {
				continue
			}
		case types.RoleAgent:
			if t.AssignedTo != sess.UserID {
				continue
			}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})

	return types.OK(out)
}

// UpdateTaskStatus moves a task through its lifecycle. CompletedAt is set
// exactly when the status becomes completed and cleared otherwise.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, status types.TaskStatus) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceTasks, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findTask(taskID)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrTaskNotFound, "task "+taskID+" not found")
	}

	oldStatus := s.tasks[idx].Status
	s.tasks[idx].Status = status
	if status == types.TaskCompleted {
		now := time.Now()
		s.tasks[idx].CompletedAt = &now
	} else {
		s.tasks[idx].CompletedAt = nil
	}

	s.auditLog.Record(types.ActionTaskUpdated, sess.UserID,
		types.AuditTargets{TaskID: taskID},
		map[string]string{"oldStatus": string(oldStatus), "newStatus": string(status)})

	ch := changes{tasks: []string{taskID}}
	if s.tasks[idx].AssignedBy != sess.UserID {
		s.notifyUser(&ch, s.tasks[idx].AssignedBy, types.NotifyTaskUpdated,
			"Task updated", s.tasks[idx].Title+" is now "+string(status),
			map[string]string{"taskId": taskID})
	}

	task := s.tasks[idx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(task)
}
