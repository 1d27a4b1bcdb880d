package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wiji1/overleaf/domain/model"
)

// UserListHeaders are the listing table columns.
var UserListHeaders = []string{"EMAIL", "ROLE", "STATUS", "LAST ACTIVE"}

// UserRow derives one listing row: ROLE from the admin flag, STATUS
// from the first address's confirmation timestamp, LAST ACTIVE as
// "Never" when absent.
func UserRow(u *model.User) []string {
	status := "Unverified"
	if u.Verified() {
		status = "Verified"
	}
	return []string{u.Email, u.Role(), status, formatLastActive(u.LastActive)}
}

// PrintUserList renders the full listing table. An empty slice yields a
// header-only table.
func PrintUserList(w io.Writer, users []*model.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow(u))
	}
	PrintTable(w, UserListHeaders, rows)
}

// PrintDegradedList emits one line per extracted email. Used when the
// remote shell output could not be parsed; all other fields are
// unavailable.
func PrintDegradedList(w io.Writer, emails []string) {
	for _, e := range emails {
		fmt.Fprintln(w, e)
	}
}

// PrettyJSON re-indents a raw JSON document for the detail view. Output
// that is not valid JSON is returned unchanged.
func PrettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(raw)), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// PrintStats renders the aggregate counts.
func PrintStats(w io.Writer, s model.UserStats) {
	fmt.Fprintf(w, "Total users: %d\n", s.Total)
	fmt.Fprintf(w, "Administrators: %d\n", s.Admins)
	fmt.Fprintf(w, "Verified emails: %d\n", s.Verified)
	fmt.Fprintf(w, "Unverified: %d\n", s.Unverified())
}

// PrintAuditList renders local operation history.
func PrintAuditList(w io.Writer, entries []*model.AuditEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := "FAILED"
		if e.Success {
			result = "OK"
		}
		rows = append(rows, []string{
			e.Time.Format("2006-01-02 15:04:05"),
			e.Operation,
			e.Email,
			result,
			e.Detail,
		})
	}
	PrintTable(w, []string{"TIME", "OPERATION", "EMAIL", "RESULT", "DETAIL"}, rows)
}

func formatLastActive(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Format("2006-01-02 15:04")
}
