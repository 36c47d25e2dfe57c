package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dreamware/prefstore/internal/backing"
	"github.com/dreamware/prefstore/internal/codec"
	"github.com/dreamware/prefstore/internal/prefs"
)

// cliOptions carries the persistent flag values shared by all subcommands.
type cliOptions struct {
	// dir is the backing store root directory.
	dir string

	// namespace is the namespace subcommands operate on.
	namespace string

	// typeName selects the value type for get and set.
	typeName string

	// defValue is the textual default returned by get for a missing key.
	defValue string

	// configPath points at an optional YAML config file.
	configPath string

	// verbose enables operation logging to stderr.
	verbose bool
}

// tagFor maps a --type flag value to its codec tag.
func tagFor(typeName string) (codec.Tag, error) {
	switch typeName {
	case "bool":
		return codec.TagBool, nil
	case "int32":
		return codec.TagInt32, nil
	case "int64":
		return codec.TagInt64, nil
	case "float32":
		return codec.TagFloat32, nil
	case "float64":
		return codec.TagFloat64, nil
	case "string":
		return codec.TagString, nil
	default:
		return "", fmt.Errorf("unknown type %q (want bool, int32, int64, float32, float64 or string)", typeName)
	}
}

// newRootCmd builds the prefs command tree. Kept separate from main so tests
// can execute commands with captured output.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "prefs",
		Short:         "Inspect and edit typed key-value namespaces",
		Long:          "prefs stores typed primitive values under string keys, grouped into\nindependently persisted namespaces backed by plain files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.dir, "dir", defaultDir(), "backing store root directory")
	pf.StringVarP(&opts.namespace, "namespace", "n", "default", "namespace to operate on")
	pf.StringVar(&opts.configPath, "config", "", "YAML config file (default ~/.prefstore.yaml if present)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log store operations to stderr")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newDelCmd(opts),
		newHasCmd(opts),
		newKeysCmd(opts),
		newClearCmd(opts),
	)
	return root
}

// open resolves config-file defaults against explicitly set flags and opens
// the target namespace over a directory backing.
func (o *cliOptions) open(cmd *cobra.Command) (*prefs.Namespace, error) {
	cfgPath := o.configPath
	optional := cfgPath == ""
	if optional {
		home, err := os.UserHomeDir()
		if err == nil {
			cfgPath = filepath.Join(home, ".prefstore.yaml")
		}
	}

	cfg := &fileConfig{}
	if cfgPath != "" {
		var err error
		cfg, err = loadConfig(cfgPath, optional)
		if err != nil {
			return nil, err
		}
	}

	// Explicit flags beat the config file, which beats built-in defaults.
	if !cmd.Flags().Changed("dir") && cfg.Dir != "" {
		o.dir = cfg.Dir
	}
	if !cmd.Flags().Changed("namespace") && cfg.Namespace != "" {
		o.namespace = cfg.Namespace
	}

	store, err := backing.NewDir(o.dir)
	if err != nil {
		return nil, err
	}

	regOpts := []prefs.Option{prefs.WithBacking(store)}
	if o.verbose {
		regOpts = append(regOpts, prefs.WithLogger(prefs.NewStdLogger(nil)))
	}

	ns, err := prefs.NewRegistry(regOpts...).Namespace(o.namespace)
	if err != nil {
		return nil, err
	}
	if cfg.Caching != nil {
		ns.SetCachingEnabled(*cfg.Caching)
	}
	return ns, nil
}

// zeroText is the textual zero value per type name, used when get has no
// explicit --default.
var zeroText = map[codec.Tag]string{
	codec.TagBool:    "false",
	codec.TagInt32:   "0",
	codec.TagInt64:   "0",
	codec.TagFloat32: "0",
	codec.TagFloat64: "0",
	codec.TagString:  "",
}

func newGetCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Resolve a key, printing the value or the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}

			tag, err := tagFor(opts.typeName)
			if err != nil {
				return err
			}

			defText := opts.defValue
			if !cmd.Flags().Changed("default") {
				defText = zeroText[tag]
			}
			def, err := codec.ParseValue(defText, tag)
			if err != nil {
				return fmt.Errorf("invalid --default for type %s: %w", opts.typeName, err)
			}

			v, err := resolve(ns, args[0], tag, def)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "string", "value type")
	cmd.Flags().StringVarP(&opts.defValue, "default", "d", "", "value printed when the key is missing")
	return cmd
}

// resolve dispatches to the typed getter matching tag and renders the result
// as text.
func resolve(ns *prefs.Namespace, key string, tag codec.Tag, def codec.Value) (string, error) {
	switch tag {
	case codec.TagBool:
		d, _ := def.Bool()
		v, err := ns.GetBool(key, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", v), nil
	case codec.TagInt32:
		d, _ := def.Int32()
		v, err := ns.GetInt32(key, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil
	case codec.TagInt64:
		d, _ := def.Int64()
		v, err := ns.GetInt64(key, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil
	case codec.TagFloat32:
		d, _ := def.Float32()
		v, err := ns.GetFloat32(key, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", v), nil
	case codec.TagFloat64:
		d, _ := def.Float64()
		v, err := ns.GetFloat64(key, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", v), nil
	default:
		d, _ := def.Text()
		return ns.GetString(key, d)
	}
}

func newSetCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a typed value and save the namespace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}

			tag, err := tagFor(opts.typeName)
			if err != nil {
				return err
			}
			v, err := codec.ParseValue(args[1], tag)
			if err != nil {
				return fmt.Errorf("value %q does not parse as %s: %w", args[1], opts.typeName, err)
			}

			store(ns, args[0], v)
			return ns.Save(false)
		},
	}
	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "string", "value type")
	return cmd
}

// store dispatches to the typed setter matching the value's tag.
func store(ns *prefs.Namespace, key string, v codec.Value) {
	switch v.Tag() {
	case codec.TagBool:
		b, _ := v.Bool()
		ns.SetBool(key, b)
	case codec.TagInt32:
		i, _ := v.Int32()
		ns.SetInt32(key, i)
	case codec.TagInt64:
		i, _ := v.Int64()
		ns.SetInt64(key, i)
	case codec.TagFloat32:
		f, _ := v.Float32()
		ns.SetFloat32(key, f)
	case codec.TagFloat64:
		f, _ := v.Float64()
		ns.SetFloat64(key, f)
	default:
		s, _ := v.Text()
		ns.SetString(key, s)
	}
}

func newDelCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Remove a key and save the namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}
			ns.Remove(args[0])
			return ns.Save(false)
		},
	}
}

func newHasCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "has KEY",
		Short: "Print whether a key exists in the namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ns.Has(args[0]))
			return nil
		},
	}
}

func newKeysCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the namespace's keys, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}
			for _, k := range ns.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newClearCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every key and persist the empty namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return ns.Clear()
		},
	}
}
