package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "print [record]",
		Short: "List the fields of a record",
		Long: `List every field of a record as an aligned "name: value" line.

Example:
  fixer print -l ssn.yaml '111-22-6789!'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.parseRecord(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), r.Print())
			return err
		},
	}
}
