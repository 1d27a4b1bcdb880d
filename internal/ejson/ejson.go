// Package ejson decodes the relaxed Extended JSON emitted by mongosh's
// EJSON.stringify into domain users, and provides the degraded-mode
// fallbacks used when the remote shell output is not parseable JSON.
package ejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wiji1/overleaf/domain/model"
)

// Date unmarshals the EJSON date encodings:
//
//	{"$date": "2024-01-02T03:04:05Z"}
//	{"$date": {"$numberLong": "1704164645000"}}
//	"2024-01-02T03:04:05Z"
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
		d.Time = t
		return nil
	}
	var wrapper struct {
		Date json.RawMessage `json:"$date"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Date) == 0 {
		return fmt.Errorf("date object without $date: %s", data)
	}
	if wrapper.Date[0] == '"' {
		var s string
		if err := json.Unmarshal(wrapper.Date, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse $date %q: %w", s, err)
		}
		d.Time = t
		return nil
	}
	var num struct {
		NumberLong string `json:"$numberLong"`
	}
	if err := json.Unmarshal(wrapper.Date, &num); err != nil {
		return err
	}
	ms, err := strconv.ParseInt(num.NumberLong, 10, 64)
	if err != nil {
		return fmt.Errorf("parse $numberLong %q: %w", num.NumberLong, err)
	}
	d.Time = time.UnixMilli(ms).UTC()
	return nil
}

// OID unmarshals {"$oid": "..."} or a bare hex string.
type OID string

func (o *OID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OID(s)
		return nil
	}
	var wrapper struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*o = OID(wrapper.OID)
	return nil
}

type emailDoc struct {
	Email       string `json:"email"`
	ConfirmedAt *Date  `json:"confirmedAt"`
}

type userDoc struct {
	ID         OID        `json:"_id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsAdmin    bool       `json:"isAdmin"`
	LastActive *Date      `json:"lastActive"`
	SignUpDate *Date      `json:"signUpDate"`
	Emails     []emailDoc `json:"emails"`
}

func (d *userDoc) toModel() *model.User {
	u := &model.User{
		ID:        string(d.ID),
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		IsAdmin:   d.IsAdmin,
	}
	if d.LastActive != nil {
		t := d.LastActive.Time
		u.LastActive = &t
	}
	if d.SignUpDate != nil {
		t := d.SignUpDate.Time
		u.SignUpDate = &t
	}
	for _, e := range d.Emails {
		me := model.UserEmail{Email: e.Email}
		if e.ConfirmedAt != nil {
			t := e.ConfirmedAt.Time
			me.ConfirmedAt = &t
		}
		u.Emails = append(u.Emails, me)
	}
	return u
}

// DecodeUsers parses an EJSON array of user documents.
func DecodeUsers(raw string) ([]*model.User, error) {
	var docs []userDoc
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &docs); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	users := make([]*model.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toModel())
	}
	return users, nil
}

// DecodeUser parses a single EJSON user document. A remote "null"
// (findOne miss) yields model.ErrUserNotFound.
func DecodeUser(raw string) (*model.User, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil, model.ErrUserNotFound
	}
	var doc userDoc
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return doc.toModel(), nil
}

// ParseCount extracts the integer result of a countDocuments or
// modifiedCount expression. Legacy shells may wrap the number
// (NumberLong("2")); the first integer run in the output wins.
func ParseCount(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n, nil
	}
	m := countRe.FindString(trimmed)
	if m == "" {
		return 0, fmt.Errorf("no count in output: %q", trimmed)
	}
	return strconv.ParseInt(m, 10, 64)
}

var (
	countRe = regexp.MustCompile(`-?\d+`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// ExtractEmails is the degraded listing path: when the raw output is not
// parseable JSON, pull out every embedded email substring, deduplicated
// in order of first appearance. All other fields are discarded.
func ExtractEmails(raw string) []string {
	seen := make(map[string]struct{})
	var emails []string
	for _, m := range emailRe.FindAllString(raw, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		emails = append(emails, m)
	}
	return emails
}
