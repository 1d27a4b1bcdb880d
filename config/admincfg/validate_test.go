package admincfg

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Root)
		wantErr string
	}{
		{"defaults_valid", func(r *Root) {}, ""},
		{"missing_namespace", func(r *Root) { r.Cluster.Namespace = "" }, "cluster: namespace"},
		{"missing_mongo_deployment", func(r *Root) { r.Mongo.Deployment = "" }, "mongo: deployment"},
		{"missing_database", func(r *Root) { r.Mongo.Database = "" }, "mongo: database"},
		{"missing_web_deployment", func(r *Root) { r.Web.Deployment = "" }, "web: deployment"},
		{"audit_empty_ok", func(r *Root) { r.Audit.DBURL = "" }, ""},
		{"audit_sqlite_ok", func(r *Root) { r.Audit.DBURL = "sqlite:audit.db" }, ""},
		{"audit_bad_scheme", func(r *Root) { r.Audit.DBURL = "postgres://x" }, "audit: unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
