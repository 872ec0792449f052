package hrstub

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type payrollInput struct {
	Employee   string             `json:"employee"`
	PayPeriod  *payPeriod         `json:"payPeriod"`
	Earnings   map[string]float64 `json:"earnings"`
	Deductions map[string]float64 `json:"deductions"`
	Notes      string             `json:"notes"`
}

func sumValues(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

func (s *Server) filterPayrolls(r *http.Request, employeeID string) []*payrollRecord {
	q := r.URL.Query()
	status := q.Get("status")
	month, _ := strconv.Atoi(q.Get("month"))
	year, _ := strconv.Atoi(q.Get("year"))

	var filtered []*payrollRecord
	for _, p := range s.data.listPayrolls() {
		if employeeID != "" && p.Employee != employeeID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		if month > 0 && p.PayPeriod.Month != month {
			continue
		}
		if year > 0 && p.PayPeriod.Year != year {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func (s *Server) handleListPayroll(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filtered := s.filterPayrolls(r, "")
	start, end, meta := paginateSlice(len(filtered), page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"payrolls":   filtered[start:end],
		"pagination": meta,
	})
}

// handleMyPayrolls lists the caller's own records. Available to every
// authenticated user with a linked employee record.
func (s *Server) handleMyPayrolls(w http.ResponseWriter, r *http.Request) {
	user := principalFromContext(r.Context())
	emp, ok := s.data.getEmployeeByUser(user.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "No employee record linked to this account")
		return
	}
	page, limit := parsePagination(r)
	filtered := s.filterPayrolls(r, emp.ID)
	start, end, meta := paginateSlice(len(filtered), page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"payrolls":   filtered[start:end],
		"pagination": meta,
	})
}

func (s *Server) handleGetPayroll(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.getPayroll(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll record not found")
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleCreatePayroll(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeJSON[payrollInput](w, r)
	if !ok {
		return
	}
	if in.Employee == "" || in.PayPeriod == nil {
		writeError(w, http.StatusBadRequest, "Employee and pay period are required")
		return
	}
	if _, found := s.data.getEmployee(in.Employee); !found {
		writeError(w, http.StatusBadRequest, "Unknown employee")
		return
	}

	p := &payrollRecord{
		ID:         newID(),
		Employee:   in.Employee,
		PayPeriod:  *in.PayPeriod,
		Earnings:   in.Earnings,
		Deductions: in.Deductions,
		NetSalary:  sumValues(in.Earnings) - sumValues(in.Deductions),
		Status:     "Pending",
		Notes:      in.Notes,
		CreatedAt:  time.Now().UTC(),
	}
	s.data.addPayroll(p)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("payroll_created", "payroll/"+p.ID, actor.Username, nil)
	writeData(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePayroll(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.getPayroll(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll record not found")
		return
	}
	if p.Status != "Pending" {
		writeError(w, http.StatusBadRequest, "Only pending payroll records can be updated")
		return
	}
	in, ok := decodeJSON[payrollInput](w, r)
	if !ok {
		return
	}

	if in.PayPeriod != nil {
		p.PayPeriod = *in.PayPeriod
	}
	if in.Earnings != nil {
		p.Earnings = in.Earnings
	}
	if in.Deductions != nil {
		p.Deductions = in.Deductions
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}
	p.NetSalary = sumValues(p.Earnings) - sumValues(p.Deductions)

	actor := principalFromContext(r.Context())
	s.data.recordAudit("payroll_updated", "payroll/"+p.ID, actor.Username, nil)
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleApprovePayroll(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.getPayroll(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll record not found")
		return
	}
	if p.Status != "Pending" {
		writeError(w, http.StatusBadRequest, "Only pending payroll records can be approved")
		return
	}
	body, _ := decodeJSONOptional[struct {
		Notes string `json:"notes"`
	}](r)

	actor := principalFromContext(r.Context())
	now := time.Now().UTC()
	p.Status = "Approved"
	p.ApprovedBy = actor.Username
	p.ApprovalDate = &now
	if body.Notes != "" {
		p.Notes = body.Notes
	}

	s.data.recordAudit("payroll_approved", "payroll/"+p.ID, actor.Username, nil)
	writeData(w, http.StatusOK, p)
}

func (s *Server) handlePayslip(w http.ResponseWriter, r *http.Request) {
	p, ok := s.data.getPayroll(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Payroll record not found")
		return
	}
	emp, _ := s.data.getEmployee(p.Employee)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PAYSLIP %04d-%02d\n", p.PayPeriod.Year, p.PayPeriod.Month)
	if emp != nil {
		fmt.Fprintf(&buf, "Employee: %s %s (%s)\n", emp.FirstName, emp.LastName, emp.Position)
	}
	for name, amount := range p.Earnings {
		fmt.Fprintf(&buf, "Earning  %-12s %10.2f\n", name, amount)
	}
	for name, amount := range p.Deductions {
		fmt.Fprintf(&buf, "Deduct   %-12s %10.2f\n", name, amount)
	}
	fmt.Fprintf(&buf, "Net salary: %.2f\n", p.NetSalary)

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.txt", p.ID))
	w.Write(buf.Bytes())
}

func (s *Server) handlePayrollCSV(w http.ResponseWriter, r *http.Request) {
	filtered := s.filterPayrolls(r, "")

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Write([]string{"id", "employee", "month", "year", "net_salary", "status"})
	for _, p := range filtered {
		cw.Write([]string{
			p.ID,
			p.Employee,
			strconv.Itoa(p.PayPeriod.Month),
			strconv.Itoa(p.PayPeriod.Year),
			strconv.FormatFloat(p.NetSalary, 'f', 2, 64),
			p.Status,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=payroll.csv")
	w.Write(buf.Bytes())
}
