package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/pkg/client"
)

// SchoolKey is the text a school list filters on.
func SchoolKey(s client.School) string {
	return s.Name + " " + s.District + " " + s.Province
}

// TeacherKey is the text a teacher list filters on.
func TeacherKey(t client.Teacher) string {
	key := t.FullName() + " " + t.Email + " " + t.SubjectSpecialization
	if t.CurrentSchool != nil {
		key += " " + t.CurrentSchool.Name
	}

	return key
}

// TransferKey is the text a transfer list filters on.
func TransferKey(t client.Transfer) string {
	var parts []string
	if t.Teacher != nil {
		parts = append(parts, t.Teacher.FullName())
	}
	if t.FromSchool != nil {
		parts = append(parts, t.FromSchool.Name)
	}
	if t.ToSchool != nil {
		parts = append(parts, t.ToSchool.Name)
	}
	parts = append(parts, t.Status)

	return strings.Join(parts, " ")
}

func RenderSchools(w io.Writer, view *ListView[client.School]) {
	if view.Empty() {
		renderEmpty(w, view.Filter())
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDISTRICT\tPROVINCE")
	for _, s := range view.Visible() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.District, s.Province)
	}
	tw.Flush()

	renderPager(w, view.Page(), view.TotalPages(), view.Total())
}

func RenderTeachers(w io.Writer, view *ListView[client.Teacher]) {
	if view.Empty() {
		renderEmpty(w, view.Filter())
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSCHOOL\tSUBJECT")
	for _, t := range view.Visible() {
		school := "-"
		if t.CurrentSchool != nil {
			school = t.CurrentSchool.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.FullName(), t.Email, school, t.SubjectSpecialization)
	}
	tw.Flush()

	renderPager(w, view.Page(), view.TotalPages(), view.Total())
}

// RenderTransfers lists transfers with the actions open to role on each row.
func RenderTransfers(w io.Writer, view *ListView[client.Transfer], role model.Role) {
	if view.Empty() {
		renderEmpty(w, view.Filter())
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTEACHER\tFROM\tTO\tSTATUS\tACTIONS")
	for _, t := range view.Visible() {
		teacher, from, to := "-", "-", "-"
		if t.Teacher != nil {
			teacher = t.Teacher.FullName()
		}
		if t.FromSchool != nil {
			from = t.FromSchool.Name
		}
		if t.ToSchool != nil {
			to = t.ToSchool.Name
		}

		status := model.TransferStatus(t.Status)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, teacher, from, to, status.Display(), actionColumn(status, role))
	}
	tw.Flush()

	renderPager(w, view.Page(), view.TotalPages(), view.Total())
}

func RenderStats(w io.Writer, stats client.Stats) {
	fmt.Fprintf(w, "Teachers: %d  Schools: %d  Pending transfers: %d\n",
		stats.Totals.TotalTeachers, stats.Totals.TotalSchools, stats.Totals.PendingTransfers)

	if len(stats.TransferByMonth) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tPENDING\tAPPROVED\tREJECTED")
	for _, m := range stats.TransferByMonth {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", m.Month, m.Pending, m.Approved, m.Rejected)
	}
	tw.Flush()
}

func RenderNotifications(w io.Writer, notifications []client.Notification) {
	if len(notifications) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return
	}

	for _, n := range notifications {
		status := model.TransferStatus(n.Type)
		fmt.Fprintf(w, "%s  transfer for %s is %s\n",
			n.Date.Format("2006-01-02 15:04"), n.TeacherName, status.Display())
	}
}

func actionColumn(status model.TransferStatus, role model.Role) string {
	actions := ActionsFor(status, role)
	if len(actions) == 0 {
		return "-"
	}

	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, a.Label)
	}

	return strings.Join(labels, "/")
}

func renderEmpty(w io.Writer, filter string) {
	if filter == "" {
		fmt.Fprintln(w, "Nothing to show.")
		return
	}

	fmt.Fprintf(w, "No rows match %q.\n", filter)
}

func renderPager(w io.Writer, page int, totalPages int, total int) {
	fmt.Fprintf(w, "Page %d/%d (%d rows)\n", page, totalPages, total)
}
