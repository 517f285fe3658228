// Package cmd implements the fixer command line tool.
package cmd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/ianlopshire/go-fixedrecord"
	"github.com/ianlopshire/go-fixedrecord/layoutfile"
	fixedzap "github.com/ianlopshire/go-fixedrecord/log/zap"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by the subcommands of one invocation.
type app struct {
	layoutPath string
	verbose    bool

	layout *fixedrecord.Layout
	log    *zap.Logger
}

func (a *app) recordLogger() fixedrecord.Logger {
	return fixedzap.ZapLogger{L: a.log}
}

// NewRootCmd returns the fixer root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fixer",
		Short: "Encode and decode fixed-width records",
		Long: `fixer builds and reads fixed-width positional records described by a
YAML layout file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return errors.Wrap(err, "create logger")
				}
				a.log = l
			} else {
				a.log = zap.NewNop()
			}

			l, err := layoutfile.Load(a.layoutPath)
			if err != nil {
				return err
			}
			a.layout = l
			a.log.Debug("layout loaded",
				zap.String("path", a.layoutPath),
				zap.Int("length", l.Length),
				zap.Int("fields", len(l.Fields)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.layoutPath, "layout", "l", "", "Path to the YAML layout file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr")
	_ = root.MarkPersistentFlagRequired("layout")

	root.AddCommand(newEncodeCmd(a), newDecodeCmd(a), newPrintCmd(a))
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readRecord returns the record given as the only argument or, without
// arguments, the first line of in.
func readRecord(args []string, in io.Reader) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "read record")
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return []byte(line), nil
}

// parseRecord wraps raw record data in a Record for the loaded layout.
func (a *app) parseRecord(args []string, in io.Reader) (*fixedrecord.Record, error) {
	data, err := readRecord(args, in)
	if err != nil {
		return nil, err
	}
	return fixedrecord.Parse(a.layout, data, fixedrecord.WithLogger(a.recordLogger()))
}
