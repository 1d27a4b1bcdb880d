package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wiji1/overleaf/adapters/kube"
	"github.com/wiji1/overleaf/adapters/mongo"
	"github.com/wiji1/overleaf/adapters/store/rdb"
	"github.com/wiji1/overleaf/adapters/web"
	"github.com/wiji1/overleaf/config/admincfg"
	"github.com/wiji1/overleaf/internal/cli/prompt"
	"github.com/wiji1/overleaf/usecase/user"
)

// buildAppFunc is swapped in tests.
var buildAppFunc = buildApp

// newConfirmer is swapped in tests to script confirmation answers.
var newConfirmer = func(yes bool) prompt.Confirmer {
	if yes {
		return prompt.Always{}
	}
	return prompt.Terminal{}
}

// app bundles everything a command needs against one Overleaf
// installation: the resolved configuration, the cluster client, the
// mongo runner, and the user use case wired over both deployments.
type app struct {
	cfg   *admincfg.Root
	kube  *kube.Client
	mongo *mongo.Runner
	uc    *user.UseCase

	// preflight verifies both deployments exist and probes the mongo
	// shell. A missing cluster client or deployment fails here, before
	// any action runs.
	preflight func(ctx context.Context) error
}

// findFlag walks up the command hierarchy looking for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func configPath(cmd *cobra.Command) string {
	if f := findFlag(cmd, "config"); f != nil {
		return f.Value.String()
	}
	return ""
}

// buildApp resolves configuration and wires the adapters and use case.
func buildApp(cmd *cobra.Command) (*app, error) {
	cfg, err := admincfg.Resolve(configPath(cmd))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := kube.NewClient(cfg.Cluster.Kubeconfig, &kube.Options{
		UserAgent: "overleaf-admin/" + version,
	})
	if err != nil {
		return nil, fmt.Errorf("kubernetes client unavailable: %w", err)
	}

	mongoRunner := mongo.NewRunner(client, cfg.Cluster.Namespace, cfg.Mongo)
	webRunner := web.NewRunner(client, cfg.Cluster.Namespace, cfg.Web)

	ports := &user.Ports{Mongo: mongoRunner, Scripts: webRunner}
	if cfg.Audit.DBURL != "" {
		db, err := rdb.OpenFromURL(cfg.Audit.DBURL)
		if err != nil {
			return nil, fmt.Errorf("open audit store: %w", err)
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate audit store: %w", err)
		}
		ports.Audit = rdb.NewAuditRepository(db)
	}

	a := &app{
		cfg:   cfg,
		kube:  client,
		mongo: mongoRunner,
		uc:    &user.UseCase{Ports: ports},
	}
	a.preflight = func(ctx context.Context) error {
		if err := client.CheckDeployment(ctx, cfg.Cluster.Namespace, cfg.Mongo.Deployment); err != nil {
			return err
		}
		if err := client.CheckDeployment(ctx, cfg.Cluster.Namespace, cfg.Web.Deployment); err != nil {
			return err
		}
		return mongoRunner.Probe(ctx)
	}
	return a, nil
}

// buildReadyApp builds the app and runs the preflight checks.
func buildReadyApp(cmd *cobra.Command) (*app, error) {
	a, err := buildAppFunc(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.preflight(cmd.Context()); err != nil {
		return nil, err
	}
	return a, nil
}
