// Command renderctl validates, formats and resolves render.yaml deployment
// manifests.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"telegram-dating-bot/internal/deploy"
)

var manifestPath string

var rootCmd = &cobra.Command{
	Use:          "renderctl",
	Short:        "Inspect and validate render.yaml deployment manifests",
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := deploy.Load(manifestPath)
		if err != nil {
			return err
		}
		violations := deploy.Validate(m)
		if len(violations) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d services)\n", manifestPath, len(m.Services))
			return nil
		}
		for _, v := range violations {
			fmt.Fprintln(cmd.ErrOrStderr(), v.String())
		}
		return fmt.Errorf("%d violation(s)", len(violations))
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the manifest in canonical form",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := deploy.Load(manifestPath)
		if err != nil {
			return err
		}
		out, err := m.Marshal()
		if err != nil {
			return err
		}
		write, _ := cmd.Flags().GetBool("write")
		if write {
			return os.WriteFile(manifestPath, out, 0o644)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the environment each worker would receive",
	Long: "Resolves every env var of every worker service: literal values, " +
		"fromService references, and secrets taken from --secret flags or the " +
		"process environment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := deploy.Load(manifestPath)
		if err != nil {
			return err
		}
		if violations := deploy.Validate(m); len(violations) > 0 {
			for _, v := range violations {
				fmt.Fprintln(cmd.ErrOrStderr(), v.String())
			}
			return fmt.Errorf("manifest invalid, not resolving")
		}

		secretFlags, _ := cmd.Flags().GetStringArray("secret")
		secrets := map[string]string{}
		for _, s := range m.RequiredSecrets {
			if v, ok := os.LookupEnv(s); ok {
				secrets[s] = v
			}
		}
		for _, kv := range secretFlags {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("bad --secret %q, want KEY=VALUE", kv)
			}
			secrets[k] = v
		}

		resolved, err := deploy.Resolve(m, deploy.ResolveOptions{Secrets: secrets})
		if err != nil {
			return err
		}

		names := make([]string, 0, len(resolved))
		for name := range resolved {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", name)
			for _, v := range resolved[name] {
				val := v.Value
				if v.Source == deploy.SourceSecret {
					val = "********"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\t(%s)\n", v.Key, val, v.Source)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "file", "f", "render.yaml", "path to the manifest")
	fmtCmd.Flags().Bool("write", false, "write the result back instead of printing")
	resolveCmd.Flags().StringArray("secret", nil, "secret value as KEY=VALUE (repeatable)")
	rootCmd.AddCommand(validateCmd, fmtCmd, resolveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
