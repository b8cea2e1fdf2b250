package leave

import "time"

// CreateLeaveRequest arrives as multipart form data. EmpCode is only
// honored for administrative callers filing on someone's behalf;
// everyone else files for themselves.
type CreateLeaveRequest struct {
	EmpCode   string `form:"emp_code" json:"emp_code"`
	StartDate string `form:"start_date" json:"start_date" binding:"required"`
	EndDate   string `form:"end_date" json:"end_date" binding:"required"`
	Reason    string `form:"reason" json:"reason"`
}

type UpdateLeaveRequest struct {
	StartDate string `form:"start_date" json:"start_date" binding:"required"`
	EndDate   string `form:"end_date" json:"end_date" binding:"required"`
	Reason    string `form:"reason" json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason,omitempty"`
	Status          string  `json:"status"`
	StatusChangedAt *string `json:"status_changed_at,omitempty"`
	Attachment      *string `json:"attachment,omitempty"`
}

type CountResponse struct {
	Total int64 `json:"total"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		EmployeeName: l.EmployeeName,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Reason:       l.Reason,
		Status:       l.Status,
		Attachment:   l.Attachment,
	}
	if l.StatusChangedAt != nil {
		v := l.StatusChangedAt.Format(time.RFC3339)
		resp.StatusChangedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}
