package admincfg

import (
	"fmt"
	"strings"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if err := r.Cluster.validate(); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	if err := r.Mongo.validate(); err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	if err := r.Web.validate(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	if err := r.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	return nil
}

func (c *Cluster) validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	return nil
}

func (m *Mongo) validate() error {
	if m.Deployment == "" {
		return fmt.Errorf("deployment is required")
	}
	if m.Database == "" {
		return fmt.Errorf("database is required")
	}
	return nil
}

func (w *Web) validate() error {
	if w.Deployment == "" {
		return fmt.Errorf("deployment is required")
	}
	return nil
}

func (a *Audit) validate() error {
	if a.DBURL == "" {
		return nil
	}
	if !strings.HasPrefix(a.DBURL, "sqlite:") && !strings.HasPrefix(a.DBURL, "sqlite3:") {
		return fmt.Errorf("unsupported dbURL scheme: %s", a.DBURL)
	}
	return nil
}
