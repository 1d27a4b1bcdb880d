package mongoshell

import (
	"strings"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "user@example.com", `'user@example.com'`},
		{"single_quote", "o'brien@example.com", `'o\'brien@example.com'`},
		{"double_quote", `a"b@example.com`, `'a\"b@example.com'`},
		{"backslash", `a\b@example.com`, `'a\\b@example.com'`},
		{"newline", "a\nb", `'a\nb'`},
		{"tab", "a\tb", `'a\tb'`},
		{"control", "a\x01b", `'a\u0001b'`},
		{"empty", "", `''`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.input); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// A crafted email must not be able to terminate the string literal and
// alter the query's meaning.
func TestQuoteNeutralizesInjection(t *testing.T) {
	payloads := []string{
		`'}); db.users.deleteMany({}); //`,
		`"}); db.dropDatabase(); //`,
		"x' || '1'=='1",
		"a\x00b",
	}
	for _, p := range payloads {
		q := Quote(p)
		inner := q[1 : len(q)-1]
		// Every quote inside the literal must be escaped.
		for i := 0; i < len(inner); i++ {
			if inner[i] == '\'' && (i == 0 || inner[i-1] != '\\') {
				t.Errorf("Quote(%q) leaves unescaped quote: %s", p, q)
			}
		}
		if strings.ContainsRune(inner, '\x00') {
			t.Errorf("Quote(%q) leaves raw control byte", p)
		}
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"count_all", CountAll(), `db.users.countDocuments({})`},
		{"count_admins", CountAdmins(true), `db.users.countDocuments({isAdmin: true})`},
		{"count_non_admins", CountAdmins(false), `db.users.countDocuments({isAdmin: false})`},
		{"count_verified", CountVerified(), `db.users.countDocuments({'emails.0.confirmedAt': {$exists: true}})`},
		{"count_by_email", CountByEmail("a@b.c"), `db.users.countDocuments({email: 'a@b.c'})`},
		{"set_admin", SetAdmin("a@b.c", true), `db.users.updateOne({email: 'a@b.c'}, {$set: {isAdmin: true}}).modifiedCount`},
		{"clear_admin", SetAdmin("a@b.c", false), `db.users.updateOne({email: 'a@b.c'}, {$set: {isAdmin: false}}).modifiedCount`},
		{"confirm_email", ConfirmPrimaryEmail("a@b.c"), `db.users.updateOne({email: 'a@b.c'}, {$set: {'emails.0.confirmedAt': new Date()}}).modifiedCount`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestFindExpressionsUseEJSON(t *testing.T) {
	for _, expr := range []string{FindAll(), FindOneByEmail("a@b.c"), FindAdminFlag("a@b.c")} {
		if !strings.HasPrefix(expr, "EJSON.stringify(") {
			t.Errorf("find expression does not use EJSON: %s", expr)
		}
	}
	if !strings.Contains(FindAll(), "sort({email: 1})") {
		t.Errorf("FindAll listing is not sorted: %s", FindAll())
	}
}

// The legacy mongo shell has no EJSON global; its listing expression
// must avoid it and print documents directly.
func TestFindAllLegacy(t *testing.T) {
	expr := FindAllLegacy()
	if strings.Contains(expr, "EJSON") {
		t.Errorf("legacy listing must not use EJSON: %s", expr)
	}
	if !strings.Contains(expr, "forEach(printjson)") {
		t.Errorf("legacy listing must print via printjson: %s", expr)
	}
	if !strings.Contains(expr, "sort({email: 1})") {
		t.Errorf("legacy listing is not sorted: %s", expr)
	}
}
