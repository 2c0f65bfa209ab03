package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Inspect application types and instances.",
}

var appsTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Print the registered application types.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOptionalDB()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}
		return printTypes(cmd.OutOrStdout(), reg)
	},
}

var appsTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the application tree as the console shows it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}
		_, queries := newAdminService(pool, reg)
		return printTree(ctx, cmd.OutOrStdout(), apptree.NewProvider(reg, queries))
	},
}

func printTypes(w io.Writer, reg *apptree.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tSINGLETON\tDESCRIPTION")
	for _, t := range reg.Types() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", t.Name, t.DisplayTitle(), t.Singleton, t.Description)
	}
	return tw.Flush()
}

// printTree writes one indented line per node, stopping at the first
// singleton type found with several instances.
func printTree(ctx context.Context, w io.Writer, tree *apptree.Provider) error {
	err := tree.Walk(ctx, apptree.RootID, func(n apptree.Node, depth int) error {
		line := strings.Repeat("  ", depth) + n.Title
		if n.PrimaryURL != "" {
			line += " (" + n.PrimaryURL + ")"
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
	if err != nil {
		return fmt.Errorf("application tree incomplete: %w", err)
	}
	return nil
}

func init() {
	appsCmd.AddCommand(appsTypesCmd, appsTreeCmd)
}
