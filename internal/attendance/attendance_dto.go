package attendance

import "time"

// CheckOutRequest arrives as multipart form data so an attachment can
// ride along.
type CheckOutRequest struct {
	CheckOutTime string `form:"check_out_time" json:"check_out_time"`
	WorkReport   string `form:"work_report" json:"work_report"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmpCode      string  `json:"emp_code"`
	EmployeeName string  `json:"employee_name"`
	CheckInAt    string  `json:"check_in_at"`
	CheckOutAt   *string `json:"check_out_at,omitempty"`
	WorkReport   *string `json:"work_report,omitempty"`
	Attachment   *string `json:"attachment,omitempty"`
}

type CountResponse struct {
	Total int64 `json:"total"`
}

type TodayCountResponse struct {
	Date         string `json:"date"`
	PresentToday int64  `json:"present_today"`
}

type MonthlyCountResponse struct {
	EmpCode      string `json:"emp_code"`
	EmployeeName string `json:"employee_name"`
	Month        string `json:"month"`
	Year         int    `json:"year"`
	Total        int64  `json:"total"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID.String(),
		EmpCode:      a.EmpCode,
		EmployeeName: a.EmployeeName,
		CheckInAt:    a.CheckInAt.Format(time.RFC3339),
		WorkReport:   a.WorkReport,
		Attachment:   a.Attachment,
	}
	if a.CheckOutAt != nil {
		v := a.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
