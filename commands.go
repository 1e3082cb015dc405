package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/expense-tracker/internal"
	"github.com/spf13/cobra"
)

type AddParams struct {
	Category    string  `short:"c" descr:"The category of the expense"`
	Amount      float64 `short:"a" descr:"The expense amount"`
	Description string  `short:"d" descr:"A description for the expense"`
	When        string  `short:"w" descr:"The date of the expense (format: 2025-12-31), defaults to today" optional:"true"`
	Date        string  `descr:"Same as --when" optional:"true"`
	Output      string  `short:"o" descr:"Listing format printed after adding" alts:"table,plain,json" default:"table"`
}

type DeleteParams struct {
	RowNumber int `descr:"Row number of the expense to delete, as shown by list" positional:"true"`
}

type SummaryParams struct {
	All      bool   `short:"a" descr:"Total of all expenses" optional:"true"`
	Category string `short:"c" descr:"Filter by category (exact match)" optional:"true"`
	Date     string `short:"d" descr:"Filter by exact date (YYYY-MM-DD)" optional:"true"`
	Month    int    `short:"m" descr:"Filter by month (1-12) in any year" optional:"true"`
	Output   string `short:"o" descr:"Output format" alts:"plain,json" default:"plain"`
}

type ListParams struct {
	Output string `short:"o" descr:"Output format" alts:"table,plain,json" default:"table"`
}

type ExportParams struct {
	Path string `descr:"Path of the .xlsx file to write" positional:"true"`
}

type ConfigInitParams struct {
	Force bool `descr:"Overwrite an existing config file" optional:"true"`
}

// globalFlags are bound to the root command's persistent flags
type globalFlags struct {
	Config   string
	File     string
	Currency string
	Debug    bool
}

// app carries one invocation: where output goes and the first error a command hit
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags
	logger *slog.Logger
	err    error
}

var errNoCommand = fmt.Errorf("%w: no command given", internal.ErrInvalidArgument)

// paramEnrich derives flag names from field names only. Short flags come from the
// short tag and values never come from unprefixed environment variables.
var paramEnrich = boa.ParamEnricherCombine(boa.ParamEnricherName, boa.ParamEnricherBool)

// run executes one command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, internal.ErrInvalidArgument) {
			// cobra parse errors: unknown command, bad flag values
			err = fmt.Errorf("%w: %v", internal.ErrInvalidArgument, err)
		}
		a.fail(err)
	}

	if a.err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", a.err)
		if errors.Is(a.err, internal.ErrInvalidArgument) && !errors.Is(a.err, errNoCommand) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		}
	}
	return internal.ExitCode(a.err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Keeps track of your expenses",
		Long: `Records expenses (date, category, amount, description) in a local JSON file,
lists them, deletes them by row number and computes totals by category, date or month.

Example:
  expense-tracker add -c food -a 12.50 -d lunch --when 2025-01-10
  expense-tracker summary --category food
  expense-tracker list`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoCommand
		},
	}

	root.PersistentFlags().StringVar(&a.flags.Config, "config", "", "config file (default is ~/.expense-tracker/config.yaml)")
	root.PersistentFlags().StringVarP(&a.flags.File, "file", "f", "", "expenses file (default is expenses.json)")
	root.PersistentFlags().StringVar(&a.flags.Currency, "currency", "", "currency code used for display, e.g. INR, USD, EUR")
	root.PersistentFlags().BoolVar(&a.flags.Debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.addCmd(),
		a.deleteCmd(),
		a.summaryCmd(),
		a.listCmd(),
		a.importCmd(),
		a.exportCmd(),
		a.configCmd(),
	)
	return root
}

// fail records the first error of the invocation
func (a *app) fail(err error) {
	if err != nil && a.err == nil {
		a.err = err
	}
}

// setup configures logging and resolves settings. Every command calls it first.
func (a *app) setup() (internal.Settings, internal.Currency, error) {
	level := slog.LevelInfo
	if a.flags.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if err := internal.LoadDotEnv(); err != nil {
		return internal.Settings{}, internal.Currency{}, err
	}

	cfg, err := internal.LoadConfigOrDefault(a.flags.Config)
	if err != nil {
		return internal.Settings{}, internal.Currency{}, fmt.Errorf("%w: %v", internal.ErrInvalidArgument, err)
	}

	settings, err := internal.ResolveSettings(cfg, internal.Overrides{
		Store:    a.flags.File,
		Currency: a.flags.Currency,
	}, os.Getenv)
	if err != nil {
		return internal.Settings{}, internal.Currency{}, err
	}

	cur := internal.NewCurrency(settings.Currency)
	a.logger.Debug("Resolved settings", "store", settings.StorePath, "currency", cur.Code, "symbol", cur.Symbol())
	return settings, cur, nil
}

func (a *app) load(path string) (*internal.Ledger, error) {
	l, err := internal.LoadLedger(path)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	a.logger.Debug("Loaded ledger", "path", path, "expenses", l.Len())
	return l, nil
}

func (a *app) save(l *internal.Ledger, path string) error {
	if err := l.Save(path); err != nil {
		return fmt.Errorf("saving data: %w", err)
	}
	a.logger.Debug("Saved ledger", "path", path, "expenses", l.Len())
	return nil
}

func (a *app) addCmd() *cobra.Command {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add a new expense").
		WithAliases("a").
		WithParamEnrich(paramEnrich).
		WithRunFunc(func(params *AddParams) { a.fail(a.add(params)) }).
		ToCobra()
}

func (a *app) add(params *AddParams) error {
	settings, cur, err := a.setup()
	if err != nil {
		return err
	}
	if err := internal.ValidateOutput(params.Output, internal.OutputTable, internal.OutputPlain, internal.OutputJSON); err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}

	if params.When != "" && params.Date != "" && params.When != params.Date {
		return fmt.Errorf("%w: --when %s and --date %s disagree, give only one", internal.ErrInvalidArgument, params.When, params.Date)
	}

	var date internal.Date
	if when := firstNonEmpty(params.When, params.Date); when != "" {
		date, err = internal.ParseDate(when)
		if err != nil {
			return err
		}
	}

	expense, err := internal.NewExpense(date, params.Category, params.Amount, params.Description)
	if err != nil {
		return err
	}

	l.Add(expense)
	if err := a.save(l, settings.StorePath); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Expense added successfully!")
	fmt.Fprintln(a.stdout)
	return internal.PrintExpenses(a.stdout, l, params.Output, cur)
}

func (a *app) deleteCmd() *cobra.Command {
	return boa.NewCmdT[DeleteParams]("delete").
		WithShort("Delete an expense by row number").
		WithAliases("d").
		WithParamEnrich(paramEnrich).
		WithRunFunc(func(params *DeleteParams) { a.fail(a.delete(params)) }).
		ToCobra()
}

func (a *app) delete(params *DeleteParams) error {
	settings, cur, err := a.setup()
	if err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}

	removed, err := l.Delete(params.RowNumber)
	if errors.Is(err, internal.ErrNoExpenses) {
		fmt.Fprintln(a.stdout, internal.NoExpensesMessage)
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.save(l, settings.StorePath); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Deleted %s\n", internal.FormatExpenseLine(params.RowNumber, removed, cur))
	return nil
}

func (a *app) summaryCmd() *cobra.Command {
	return boa.NewCmdT[SummaryParams]("summary").
		WithShort("Total expenses, optionally filtered by category, date or month").
		WithLong(`Prints one total. When several filters are given the first one in this order
wins: --category, --date, --month, --all.`).
		WithAliases("s", "total").
		WithParamEnrich(paramEnrich).
		WithRunFunc3(func(params *SummaryParams, cmd *cobra.Command, _ []string) {
			a.fail(a.summary(params, cmd.Flags().Changed("month")))
		}).
		ToCobra()
}

// summary runs one summary query. monthSet reports whether --month was given at all,
// so an explicit 0 is rejected instead of read as "not given".
func (a *app) summary(params *SummaryParams, monthSet bool) error {
	settings, cur, err := a.setup()
	if err != nil {
		return err
	}
	if err := internal.ValidateOutput(params.Output, internal.OutputPlain, internal.OutputJSON); err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}

	query, err := internal.SelectSummary(internal.SummaryOptions{
		All:      params.All,
		Category: params.Category,
		Date:     params.Date,
		Month:    params.Month,
		MonthSet: monthSet,
	})
	if err != nil {
		return err
	}

	a.logger.Debug("Running summary", "filter", query.Kind, "value", query.FilterValue())
	return internal.PrintSummary(a.stdout, query.Run(l), params.Output, cur)
}

func (a *app) listCmd() *cobra.Command {
	return boa.NewCmdT[ListParams]("list").
		WithShort("List all expenses").
		WithAliases("l").
		WithParamEnrich(paramEnrich).
		WithRunFunc(func(params *ListParams) { a.fail(a.list(params)) }).
		ToCobra()
}

func (a *app) list(params *ListParams) error {
	settings, cur, err := a.setup()
	if err != nil {
		return err
	}
	if err := internal.ValidateOutput(params.Output, internal.OutputTable, internal.OutputPlain, internal.OutputJSON); err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}
	return internal.PrintExpenses(a.stdout, l, params.Output, cur)
}

func (a *app) importCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Append expenses from other files",
		Long: `Appends every expense found in the given files, in order, and saves once.

The format of each file is taken from a "format:" prefix, then --source, then the
file extension (.json is ledger-json, .xlsx is xlsx).

Example:
  expense-tracker import backup.json
  expense-tracker import xlsx:march.xlsx`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.fail(a.importFiles(args, source))
		},
	}
	cmd.Flags().StringVar(&source, "source", "", fmt.Sprintf("format of files without a prefix (available: %v)", internal.AvailableSources()))
	return cmd
}

func (a *app) importFiles(args []string, source string) error {
	settings, _, err := a.setup()
	if err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}

	imported, err := internal.ImportFiles(args, source)
	if err != nil {
		return err
	}
	for _, e := range imported {
		l.Add(e)
	}

	if err := a.save(l, settings.StorePath); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d expenses from %d file(s)\n", len(imported), len(args))
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	return boa.NewCmdT[ExportParams]("export").
		WithShort("Write all expenses to an Excel workbook").
		WithParamEnrich(paramEnrich).
		WithRunFunc(func(params *ExportParams) { a.fail(a.export(params)) }).
		ToCobra()
}

func (a *app) export(params *ExportParams) error {
	settings, _, err := a.setup()
	if err != nil {
		return err
	}

	l, err := a.load(settings.StorePath)
	if err != nil {
		return err
	}

	if err := internal.ExportXLSX(l, params.Path); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	fmt.Fprintf(a.stdout, "Exported %d expenses to %s\n", l.Len(), params.Path)
	return nil
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(boa.NewCmdT[ConfigInitParams]("init").
		WithShort("Write a config file template (to --config or the default path)").
		WithParamEnrich(paramEnrich).
		WithRunFunc(func(params *ConfigInitParams) { a.fail(a.configInit(params)) }).
		ToCobra())
	return cmd
}

func (a *app) configInit(params *ConfigInitParams) error {
	path := a.flags.Config
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return fmt.Errorf("%w: cannot determine home directory, use --config", internal.ErrInvalidArgument)
	}

	if _, err := os.Stat(path); err == nil && !params.Force {
		return fmt.Errorf("%w: %s already exists, use --force to overwrite", internal.ErrInvalidArgument, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", internal.ErrIO, err)
	}

	if err := internal.GenerateConfigTemplate().Save(path); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrIO, err)
	}
	fmt.Fprintf(a.stdout, "Wrote config to %s\n", path)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
