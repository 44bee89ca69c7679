package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wasmlibs/hostadd"
)

// options holds flag values before resolution against the config file.
type options struct {
	configPath string
	policy     string
	module     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "hostadd",
		Short:        "Expose a native add function to WebAssembly modules",
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.policy, "policy", "", "overflow policy: fail, wrap or saturate")
	cmd.PersistentFlags().StringVar(&opts.module, "module", "", "host module name guests import")

	cmd.AddCommand(newAddCmd(opts), newRunCmd(opts))
	return cmd
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Call the native add function through the runtime",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(opts)
			if err != nil {
				return err
			}

			a, err := parseI32(args[0])
			if err != nil {
				return err
			}
			b, err := parseI32(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			r := wazero.NewRuntime(ctx)
			defer r.Close(ctx)

			builder := r.NewHostModuleBuilder(cfg.Module)
			cfg.exporter().ExportFunctions(builder)
			mod, err := builder.Instantiate(ctx)
			if err != nil {
				return err
			}

			results, err := mod.ExportedFunction(hostadd.FunctionName).
				Call(ctx, api.EncodeI32(a), api.EncodeI32(b))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d + %d = %d\n", a, b, api.DecodeI32(results[0]))
			return nil
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "run <wasm> <a> <b>",
		Short: "Run a guest module which imports the add function",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(opts)
			if err != nil {
				return err
			}

			bin, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			a, err := parseI32(args[1])
			if err != nil {
				return err
			}
			b, err := parseI32(args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			r := wazero.NewRuntime(ctx)
			defer r.Close(ctx)

			builder := r.NewHostModuleBuilder(cfg.Module)
			cfg.exporter().ExportFunctions(builder)
			if _, err = builder.Instantiate(ctx); err != nil {
				return err
			}

			guest, err := r.Instantiate(ctx, bin)
			if err != nil {
				return err
			}

			fn := guest.ExportedFunction(entry)
			if fn == nil {
				return fmt.Errorf("function %q is not exported by %s", entry, args[0])
			}

			results, err := fn.Call(ctx, api.EncodeI32(a), api.EncodeI32(b))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d + %d = %d\n", a, b, api.DecodeI32(results[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "add2", "name of the exported guest function to call")
	return cmd
}

func parseI32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int32(v), nil
}
