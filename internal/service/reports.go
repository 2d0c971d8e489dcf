package service

import (
	"context"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// ReportInput describes a new draft report
type ReportInput struct {
	Title    string              `json:"title"`
	BranchID string              `json:"branchId"`
	Metrics  types.ReportMetrics `json:"metrics"`
}

// CreateReport creates a draft report owned by the session user
func (s *Service) CreateReport(ctx context.Context, input ReportInput) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceReports, types.ActionCreate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	if input.Title == "" {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "report title is required")
	}
	if s.findBranch(input.BranchID) == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrBranchNotFound, "branch "+input.BranchID+" not found")
	}

	report := types.Report{
		ID:          types.NewID("report"),
		Title:       input.Title,
		BranchID:    input.BranchID,
		SubmittedBy: sess.UserID,
		Status:      types.ReportDraft,
		Metrics:     input.Metrics,
		CreatedAt:   time.Now(),
	}
	s.reports = append(s.reports, report)

	s.auditLog.Record(types.ActionReportCreated, sess.UserID, types.AuditTargets{ReportID: report.ID}, nil)
	s.mu.Unlock()

	s.publish(changes{})
	return types.OK(report)
}

// SubmitReport moves a draft to submitted
func (s *Service) SubmitReport(ctx context.Context, reportID string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceReports, types.ActionUpdate)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findReport(reportID)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrReportNotFound, "report "+reportID+" not found")
	}
	if s.reports[idx].Status != types.ReportDraft {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "only draft reports can be submitted")
	}

	now := time.Now()
	s.reports[idx].Status = types.ReportSubmitted
	s.reports[idx].SubmittedAt = &now

	s.auditLog.Record(types.ActionReportSubmitted, sess.UserID, types.AuditTargets{ReportID: reportID}, nil)
	report := s.reports[idx]
	s.mu.Unlock()

	s.publish(changes{})
	return types.OK(report)
}

// ReviewReport approves or rejects a submitted report and notifies the
// submitter. Only reports in submitted state can be reviewed.
func (s *Service) ReviewReport(ctx context.Context, reportID string, approve bool, adminNotes string) types.Response {
	s.wait(ctx)

	s.mu.Lock()

	sess, fail := s.requirePermission(types.ResourceReports, types.ActionApprove)
	if fail != nil {
		s.mu.Unlock()
		return *fail
	}
	idx := s.findReport(reportID)
	if idx == -1 {
		s.mu.Unlock()
		return types.Fail(types.ErrReportNotFound, "report "+reportID+" not found")
	}
	if s.reports[idx].Status != types.ReportSubmitted {
		s.mu.Unlock()
		return types.Fail(types.ErrValidation, "only submitted reports can be reviewed")
	}

	now := time.Now()
	newStatus := types.ReportRejected
	if approve {
		newStatus = types.ReportApproved
	}
	s.reports[idx].Status = newStatus
	s.reports[idx].ReviewedBy = sess.UserID
	s.reports[idx].ReviewedAt = &now
	s.reports[idx].AdminNotes = adminNotes

	s.auditLog.Record(types.ActionReportReviewed, sess.UserID,
		types.AuditTargets{ReportID: reportID}, map[string]string{"status": string(newStatus)})

	ch := changes{}
	s.notifyUser(&ch, s.reports[idx].SubmittedBy, types.NotifyReportReviewed,
		"Report "+string(newStatus), s.reports[idx].Title+" was "+string(newStatus),
		map[string]string{"reportId": reportID})

	report := s.reports[idx]
	s.mu.Unlock()

	s.publish(ch)
	return types.OK(report)
}

// ListReports returns reports visible to the session role
func (s *Service) ListReports(ctx context.Context) types.Response {
	s.wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, fail := s.requirePermission(types.ResourceReports, types.ActionRead)
	if fail != nil {
		return *fail
	}

	out := make([]types.Report, 0)
	for _, r := range s.reports {
		switch sess.Role {
		case types.RoleBranchManager:
			if r.BranchID != sess.BranchID {
				continue
			}
		case types.RoleAgent:
			if r.SubmittedBy != sess.UserID {
				continue
			}
		}
		out = append(out, r)
	}
	return types.OK(out)
}
