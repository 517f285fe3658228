package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ianlopshire/go-fixedrecord"
	"github.com/ianlopshire/go-fixedrecord/internal/valuecodec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		valuesPath   string
		format       string
		sets         []string
		defaultValue string
		truncate     bool
	)

	c := &cobra.Command{
		Use:   "encode",
		Short: "Build a record from field values",
		Long: `Build a record from field values and write it to stdout.

Values come from a values file (JSON or YAML, "-" for stdin) and from
--set flags, which are applied afterwards.

Example:
  fixer encode -l ssn.yaml --set first=111 --set second=22 --set third=6789`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fixedrecord.Option{fixedrecord.WithLogger(a.recordLogger())}
			if cmd.Flags().Changed("default-value") {
				opts = append(opts, fixedrecord.WithDefaultValue(defaultValue))
			}
			r, err := fixedrecord.New(a.layout, opts...)
			if err != nil {
				return err
			}

			set := r.Set
			if truncate {
				set = r.SafeSet
			}

			if valuesPath != "" {
				values, err := readValues(valuesPath, format, cmd.InOrStdin())
				if err != nil {
					return err
				}
				// Apply in layout order so the result does not depend on map order.
				for _, f := range a.layout.Fields {
					v, ok := values[f.Name]
					if !ok {
						continue
					}
					if err := set(f.Name, v); err != nil {
						return err
					}
					delete(values, f.Name)
				}
				if len(values) > 0 {
					return &fixedrecord.InvalidFieldError{Field: firstKey(values)}
				}
			}

			for _, kv := range sets {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return errors.Errorf("invalid --set %q, want name=value", kv)
				}
				if err := set(name, value); err != nil {
					return err
				}
			}

			out, err := r.Output()
			if err != nil {
				return err
			}
			a.log.Debug("record encoded", zap.Int("length", len(out)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	c.Flags().StringVarP(&valuesPath, "values", "f", "", `Values file, "-" reads stdin`)
	c.Flags().StringVar(&format, "format", "", "Values file format (json, yaml); defaults to the file extension")
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, "Set a field, name=value (repeatable)")
	c.Flags().StringVar(&defaultValue, "default-value", "", "Seed the record with this text instead of the layout's initial value")
	c.Flags().BoolVar(&truncate, "truncate", false, "Truncate values that are too long instead of failing")
	return c
}

func readValues(path, format string, stdin io.Reader) (valuecodec.Values, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read values")
	}

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if format == "" {
		format = "json"
	}
	c, err := valuecodec.ByName(format)
	if err != nil {
		return nil, err
	}
	values, err := c.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s values", format)
	}
	return values, nil
}

func firstKey(values valuecodec.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
