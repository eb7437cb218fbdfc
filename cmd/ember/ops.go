package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ember/internal/ir"
)

var opsBackend string

func init() {
	opsCmd.Flags().StringVar(&opsBackend, "backend", "", "target backend (default from ember.toml, then cuda)")
	rulesCmd.Flags().StringVar(&opsBackend, "backend", "", "target backend (default from ember.toml, then cuda)")
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List registered operations and their metadata",
	RunE: func(cmd *cobra.Command, _ []string) error {
		applyColorMode(cmd)
		env, err := envFromFlags()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		header := color.New(color.Bold)
		header.Fprintf(out, "%-28s %5s  %-18s %s\n", "OP", "ARITY", "SYMBOL", "FLAGS")
		for _, name := range env.reg.Names() {
			id := env.reg.MustOp(name)
			arity := "*"
			if n := env.reg.NumInputs(id); n != ir.NumInputsAny {
				arity = fmt.Sprintf("%d", n)
			}
			sym, _ := env.reg.AttrString(id, ir.AttrGlobalSymbol)
			var flags []string
			if env.reg.AttrBool(id, ir.AttrNeedWarpSync) {
				flags = append(flags, "need_warp_sync")
			}
			fmt.Fprintf(out, "%-28s %5s  %-18s %s\n", name, arity, sym, strings.Join(flags, ","))
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered lowering rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		applyColorMode(cmd)
		env, err := envFromFlags()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range env.tbl.Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func envFromFlags() (*backendEnv, error) {
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	return newBackendEnv(resolveBackend(opsBackend, manifest))
}
