package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cypherfrag/internal/canonical"
	"github.com/roach88/cypherfrag/internal/compiler"
	"github.com/roach88/cypherfrag/internal/store"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Pattern   string // only build this definition
	Condensed bool   // force the single-parameter rendering
	Record    string // catalog database to record into
}

// BuiltFragment is one rendered definition.
type BuiltFragment struct {
	Name        string         `json:"name"`
	Query       string         `json:"query"`
	Params      map[string]any `json:"params"`
	Fingerprint string         `json:"fingerprint"`

	// Set when --record is used.
	ID       string `json:"id,omitempty"`
	Recorded bool   `json:"recorded,omitempty"`
}

// BuildResult is the output of the build command.
type BuildResult struct {
	Fragments []BuiltFragment `json:"fragments"`
}

// String renders the text output.
func (r BuildResult) String() string {
	var b strings.Builder
	for i, f := range r.Fragments {
		if i > 0 {
			b.WriteByte('\n')
		}
		params, err := canonical.Marshal(f.Params)
		if err != nil {
			params = []byte(fmt.Sprint(f.Params))
		}
		fmt.Fprintf(&b, "%s\n  query:  %s\n  params: %s", f.Name, f.Query, params)
		if f.ID != "" {
			state := "existing"
			if f.Recorded {
				state = "new"
			}
			fmt.Fprintf(&b, "\n  entry:  %s (%s)", f.ID, state)
		}
	}
	return b.String()
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <path>",
		Short: "Render pattern definitions from CUE",
		Long: `Render every definition under the top-level "pattern" struct of a CUE
file or package directory.

Each definition may set variable, labels, conditions and expanded:

  pattern: person: {
      variable: "person"
      labels: ["Person", "Staff"]
      conditions: { name: "Steve", active: true }
  }

Examples:
  cypherfrag build ./patterns
  cypherfrag build person.cue --pattern person --condensed
  cypherfrag build ./patterns --record catalog.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "", "build only the named definition")
	cmd.Flags().BoolVar(&opts.Condensed, "condensed", false, "render conditions as one map parameter")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record fragments into this catalog database")

	return cmd
}

func runBuild(ctx context.Context, opts *BuildOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	loadResult, loadErrors := LoadPatterns(path, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		code, message, _ := describeLoadError(loadErrors[0])
		return commandError(formatter, code, message)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, path)

	if len(loadErrors) > 0 {
		cliErrors := make([]CLIError, len(loadErrors))
		for i, err := range loadErrors {
			code, message, loc := describeLoadError(err)
			cliErrors[i] = CLIError{Code: code, Message: message, Details: loc}
		}
		if err := formatter.Errors("Build failed", cliErrors); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("build failed with %d error(s)", len(loadErrors)))
	}

	defs := loadResult.Patterns
	if opts.Pattern != "" {
		def, ok := loadResult.Find(opts.Pattern)
		if !ok {
			return commandError(formatter, ErrCodeUnknownPattern, fmt.Sprintf("no pattern named %q", opts.Pattern))
		}
		defs = []compiler.PatternDef{def}
	}

	var catalog *store.Store
	if opts.Record != "" {
		st, err := store.Open(opts.Record)
		if err != nil {
			return commandError(formatter, ErrCodeCatalogOpen, err.Error())
		}
		defer st.Close()
		catalog = st
	}

	result := BuildResult{Fragments: make([]BuiltFragment, 0, len(defs))}
	for _, def := range defs {
		formatter.VerboseLog("Building pattern: %s", def.Name)

		node := def.Build()
		if opts.Condensed {
			node.SetExpandedConditions(false)
		}
		obj := node.BuildQueryObject()

		fingerprint, err := canonical.Fingerprint(obj.Query, obj.Params)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("%s: %v", def.Name, err))
		}

		built := BuiltFragment{
			Name:        def.Name,
			Query:       obj.Query,
			Params:      obj.Params,
			Fingerprint: fingerprint,
		}

		if catalog != nil {
			entry, inserted, err := catalog.Record(ctx, def.Name, obj)
			if err != nil {
				return commandError(formatter, ErrCodeWriteFailed, err.Error())
			}
			slog.Info("recorded fragment", "name", def.Name, "id", entry.ID, "inserted", inserted)
			built.ID = entry.ID
			built.Recorded = inserted
		}

		result.Fragments = append(result.Fragments, built)
	}

	return formatter.Success(result)
}

// describeLoadError extracts code, message and source location.
func describeLoadError(err error) (code, message, location string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message, loadErr.Location()
	}
	return ErrCodeGeneric, err.Error(), ""
}
