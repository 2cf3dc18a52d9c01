package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nwlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		code := color.New(color.FgCyan, color.Bold)
		out := cmd.OutOrStdout()

		for _, r := range rules.All() {
			fmt.Fprintf(out, "%s  %-18s %s\n", code.Sprint(r.Code), r.Name, r.Doc)
		}
		fmt.Fprintf(out, "\nBuiltin calls exempt from %s: %s\n",
			rules.KeywordCall.Code, strings.Join(rules.BuiltinCalls(), ", "))
	},
}
