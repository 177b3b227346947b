package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"c4model/internal/config"
	"c4model/internal/loader"
	"c4model/internal/watcher"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check definition files without storing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				ws, err := loader.LoadYAML(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n%s\n", path, ws.Summary())
			}
			if failed > 0 {
				return errors.Newf("%d of %d definitions invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]...",
		Short: "Load definition files and store their workspaces",
		Long:  "Load definition files and store their workspaces. Without arguments the config's definitions are imported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = a.cfg.Definitions
			}
			if len(paths) == 0 {
				return errors.New("no definition files given and none configured")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			loaded, err := svc.ImportAll(cmd.Context(), paths)
			if err != nil {
				return err
			}
			for _, ws := range loaded {
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d elements)\n", ws.Name, ws.Len())
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			infos, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tELEMENTS\tRELATIONSHIPS\tUPDATED")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", info.Name, info.Elements, info.Relationships, info.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <workspace>",
		Short: "Print a stored workspace snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.Export(cmd.Context(), args[0], format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func newInstanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "instance <workspace> <alias> <name> | <workspace> <alias:name>",
		Short: "Intern an instance of a stored container",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, alias, name := args[0], "", ""
			if len(args) == 3 {
				alias, name = args[1], args[2]
			} else {
				var ok bool
				alias, name, ok = splitInstanceKey(args[1])
				if !ok {
					return errors.Newf("%q is not an instance key (alias:name)", args[1])
				}
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			inst, created, err := svc.Instance(cmd.Context(), workspace, alias, name)
			if err != nil {
				return err
			}

			state := "existing"
			if created {
				state = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n", state, inst.Alias(), inst.Label(), inst.Type())
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workspace>",
		Short: "Delete a stored workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.Delete(cmd.Context(), args[0])
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]...",
		Short: "Re-import definition files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = a.cfg.Definitions
			}
			if len(paths) == 0 {
				return errors.New("no definition files given and none configured")
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := svc.ImportAll(ctx, paths); err != nil {
				a.log.Warn("initial import failed", zap.Error(err))
			}

			w := watcher.New(paths, func(path string) {
				if _, err := svc.Import(ctx, path); err != nil {
					a.log.Error("re-import failed", zap.String("path", path), zap.Error(err))
				}
			}).WithDebounce(a.cfg.Watch.Debounce.Duration()).WithLogger(a.log.Sugar())

			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Info("watch stopped")
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := a.configPath
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n%s\n", source, a.cfg.Summary())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return errors.Newf("%s already exists", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}
