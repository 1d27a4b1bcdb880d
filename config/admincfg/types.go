// Package admincfg defines the configuration schema for
// overleaf-admin.yml and its loading and validation helpers.
package admincfg

// Root is the root structure of overleaf-admin.yml.
type Root struct {
	Version string  `yaml:"version"`
	Cluster Cluster `yaml:"cluster"`
	Mongo   Mongo   `yaml:"mongo"`
	Web     Web     `yaml:"web"`
	Audit   Audit   `yaml:"audit"`
}

// Cluster identifies where the Overleaf deployments run.
type Cluster struct {
	// Kubeconfig is a path to a kubeconfig file. Empty means the default
	// loading rules (KUBECONFIG, then ~/.kube/config, then in-cluster).
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	Namespace  string `yaml:"namespace"`
}

// Mongo locates the database deployment and logical database.
type Mongo struct {
	Deployment string `yaml:"deployment"`
	Container  string `yaml:"container,omitempty"` // empty: first container
	Database   string `yaml:"database"`
}

// Web locates the application deployment holding the maintenance scripts.
type Web struct {
	Deployment string `yaml:"deployment"`
	Container  string `yaml:"container,omitempty"`
	// ScriptDir is the directory containing the server-ce-scripts inside
	// the web container.
	ScriptDir string `yaml:"scriptDir,omitempty"`
}

// Audit configures the local operation history store.
type Audit struct {
	// DBURL is a database URL (sqlite:/path/to.db). Empty disables the
	// audit log.
	DBURL string `yaml:"dbURL,omitempty"`
}

// Default returns the configuration used when no file is present:
// a stock Overleaf deployment in the "overleaf" namespace.
func Default() *Root {
	return &Root{
		Version: "v1",
		Cluster: Cluster{Namespace: "overleaf"},
		Mongo:   Mongo{Deployment: "mongo", Database: "sharelatex"},
		Web:     Web{Deployment: "sharelatex", ScriptDir: "/overleaf/services/web"},
	}
}
