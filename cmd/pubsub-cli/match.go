package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanouthq/pubsub-go/pkg/glob"
)

func newMatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> <name>",
		Short: "Test a glob pattern against a channel name",
		Long: `Test a glob pattern against a channel name, using the same matcher
pattern channels use: '?' matches one byte, '*' matches any run of bytes,
'[a-z]' matches a class, '\' escapes the next byte.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], args[1])
		},
	}
}

func runMatch(cmd *cobra.Command, pattern, name string) error {
	if glob.MatchString(pattern, name) {
		cmd.Printf("pattern %q matches %q\n", pattern, name)
		return nil
	}
	return fmt.Errorf("pattern %q does not match %q", pattern, name)
}
