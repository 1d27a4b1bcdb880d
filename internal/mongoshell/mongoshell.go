// Package mongoshell builds mongo shell expressions for the Overleaf
// users collection. Every caller-supplied string is escaped into a JS
// string literal before interpolation; expressions are evaluated by a
// MongoRunner with `mongosh <db> --quiet --eval <expr>`.
package mongoshell

import (
	"fmt"
	"strings"
)

// projection keeps listing payloads small: only the fields the table
// renderer derives from.
const listProjection = `{email: 1, isAdmin: 1, lastActive: 1, 'emails.email': 1, 'emails.confirmedAt': 1}`

// Quote escapes s into a single-quoted JS string literal. Quotes,
// backslashes, and control characters cannot terminate the literal or
// alter the surrounding expression.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// CountAll counts every user document.
func CountAll() string {
	return `db.users.countDocuments({})`
}

// CountAdmins counts users by admin flag.
func CountAdmins(admin bool) string {
	return fmt.Sprintf(`db.users.countDocuments({isAdmin: %t})`, admin)
}

// CountVerified counts users whose primary address carries a
// confirmation timestamp.
func CountVerified() string {
	return `db.users.countDocuments({'emails.0.confirmedAt': {$exists: true}})`
}

// CountByEmail counts documents matching one email; used as the
// existence check before destructive operations.
func CountByEmail(email string) string {
	return fmt.Sprintf(`db.users.countDocuments({email: %s})`, Quote(email))
}

// FindAll returns the projected listing of all users as EJSON, sorted
// by email for stable output.
func FindAll() string {
	return fmt.Sprintf(`EJSON.stringify(db.users.find({}, %s).sort({email: 1}).toArray())`, listProjection)
}

// FindAllLegacy is the listing expression for the legacy mongo shell,
// which has no EJSON global. Output is printjson lines, parseable only
// by email extraction.
func FindAllLegacy() string {
	return fmt.Sprintf(`db.users.find({}, %s).sort({email: 1}).forEach(printjson)`, listProjection)
}

// FindOneByEmail returns the full document for one user as EJSON, or
// the literal "null" when absent.
func FindOneByEmail(email string) string {
	return fmt.Sprintf(`EJSON.stringify(db.users.findOne({email: %s}))`, Quote(email))
}

// FindAdminFlag returns only the admin flag of one user as EJSON.
func FindAdminFlag(email string) string {
	return fmt.Sprintf(`EJSON.stringify(db.users.findOne({email: %s}, {isAdmin: 1}))`, Quote(email))
}

// SetAdmin updates the admin flag in place and prints the modified count.
func SetAdmin(email string, admin bool) string {
	return fmt.Sprintf(`db.users.updateOne({email: %s}, {$set: {isAdmin: %t}}).modifiedCount`, Quote(email), admin)
}

// ConfirmPrimaryEmail stamps the first address entry as verified.
func ConfirmPrimaryEmail(email string) string {
	return fmt.Sprintf(`db.users.updateOne({email: %s}, {$set: {'emails.0.confirmedAt': new Date()}}).modifiedCount`, Quote(email))
}
