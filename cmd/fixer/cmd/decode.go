package cmd

import (
	"github.com/ianlopshire/go-fixedrecord/internal/valuecodec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "decode [record]",
		Short: "Decode a record into field values",
		Long: `Decode a record into field values and write them to stdout.

The record is read from the argument or, without one, from the first
line of stdin.

Example:
  fixer decode -l ssn.yaml --format yaml '111-22-6789!'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := valuecodec.ByName(format)
			if err != nil {
				return err
			}
			r, err := a.parseRecord(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			b, err := codec.Encode(r.ToMap())
			if err != nil {
				return errors.Wrapf(err, "encode %s values", format)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	c.Flags().StringVar(&format, "format", "json", "Output format (json, yaml, msgpack, cbor)")
	return c
}
