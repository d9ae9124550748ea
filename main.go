package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scrollgraph/calgrid"
	"scrollgraph/config"
	"scrollgraph/encode"
	"scrollgraph/gcal"
	"scrollgraph/render"
	"scrollgraph/source"
)

var version = "dev"

type options struct {
	configPath  string
	username    string
	year        int
	theme       string
	output      string
	source      string
	token       string
	apiBaseURL  string
	calendarIDs []string
	workers     int
	logLevel    string
}

type app struct {
	opts   options
	logger *log.Logger
	out    io.Writer
	now    func() time.Time
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName})
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger.SetFormatter(log.LogfmtFormatter)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{logger: logger, out: os.Stdout, now: time.Now}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Render a contribution calendar as a scrolling animation",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "config file (default ~/.config/scrollgraph/config.yaml)")
	pf.StringVarP(&a.opts.username, "username", "u", "", "account whose contributions are drawn")
	pf.IntVarP(&a.opts.year, "year", "y", 0, "informational year label; the window always ends today (default current year)")
	pf.StringVar(&a.opts.theme, "theme", render.DefaultTheme, fmt.Sprintf("color theme %v", render.ThemeNames()))
	pf.StringVar(&a.opts.source, "source", config.SourceJogruber, fmt.Sprintf("data source %v", config.Sources))
	pf.StringVar(&a.opts.token, "token", "", "GitHub token for --source github (default $GITHUB_TOKEN)")
	pf.StringVar(&a.opts.apiBaseURL, "api-url", "", "override the data source endpoint")
	pf.StringSliceVar(&a.opts.calendarIDs, "calendar", nil, "calendar IDs for --source gcal")
	pf.StringVar(&a.opts.logLevel, "log-level", "info", "debug, info, warn or error")

	cmd.Flags().StringVarP(&a.opts.output, "output", "o", config.DefaultOutput, "output file, .gif or .png (APNG)")
	cmd.Flags().IntVar(&a.opts.workers, "workers", 0, "frames rendered concurrently (0 renders sequentially)")

	cmd.AddCommand(a.previewCmd(), a.calendarsCmd(), a.versionCmd())
	return cmd
}

// resolve layers flags over the config file.
func (a *app) resolve(cmd *cobra.Command) error {
	path := a.opts.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	changed := func(name string) bool {
		return cmd.Flags().Changed(name)
	}
	if !changed("username") {
		a.opts.username = cfg.Username
	}
	if !changed("theme") && cfg.Theme != "" {
		a.opts.theme = cfg.Theme
	}
	if !changed("output") {
		a.opts.output = cfg.Output
	}
	if !changed("source") {
		a.opts.source = cfg.Source
	}
	if !changed("api-url") {
		a.opts.apiBaseURL = cfg.APIBaseURL
	}
	if !changed("calendar") {
		a.opts.calendarIDs = cfg.CalendarIDs
	}
	if !changed("workers") {
		a.opts.workers = cfg.Workers
	}
	if !changed("log-level") && cfg.LogLevel != "" {
		a.opts.logLevel = cfg.LogLevel
	}
	if a.opts.token == "" {
		a.opts.token = os.Getenv("GITHUB_TOKEN")
	}
	if a.opts.year == 0 {
		a.opts.year = a.now().Year()
	}

	level, err := log.ParseLevel(a.opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	a.logger.SetLevel(level)

	if a.opts.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", a.opts.workers)
	}
	if a.opts.username == "" && a.opts.source != config.SourceGCal {
		return errors.New("--username is required (or set username in the config file)")
	}
	return nil
}

func (a *app) newSource(ctx context.Context) (source.Source, error) {
	switch a.opts.source {
	case config.SourceJogruber:
		return source.NewJogruber(a.opts.apiBaseURL), nil
	case config.SourceGitHub:
		if a.opts.token == "" {
			return nil, errors.New("--source github needs --token or GITHUB_TOKEN")
		}
		return source.NewGitHub(ctx, a.opts.token, a.opts.apiBaseURL), nil
	case config.SourceGCal:
		srv, err := gcal.NewService(ctx)
		if err != nil {
			return nil, err
		}
		return &source.GoogleCalendar{Service: srv, CalendarIDs: a.opts.calendarIDs}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want one of %v)", a.opts.source, config.Sources)
	}
}

func (a *app) identifier() string {
	if a.opts.username == "" {
		return "primary"
	}
	return a.opts.username
}

func (a *app) resolveTheme() render.Theme {
	theme, ok := render.ThemeByName(a.opts.theme)
	if !ok {
		a.logger.Warn("unknown theme, using default", "theme", a.opts.theme, "default", theme.Name)
	}
	return theme
}

// load fetches two years of samples and lays them out on the grid.
func (a *app) load(ctx context.Context) (calgrid.Sequence, calgrid.Grid, calgrid.MonthIndex, error) {
	var (
		seq    calgrid.Sequence
		grid   calgrid.Grid
		months calgrid.MonthIndex
	)

	src, err := a.newSource(ctx)
	if err != nil {
		return seq, grid, months, err
	}

	// Fetches follow the clock; --year only labels the run.
	today := a.now()
	a.logger.Info("fetching contributions", "source", src.Name(), "id", a.identifier(), "year", a.opts.year, "window_end", today.Format(calgrid.DateLayout))
	samples, err := source.FetchYears(ctx, src, a.identifier(), today.Year())
	if err != nil {
		return seq, grid, months, err
	}
	a.logger.Info("fetched samples", "count", len(samples))

	seq, err = calgrid.Normalize(samples, today)
	if err != nil {
		return seq, grid, months, fmt.Errorf("normalize: %w", err)
	}
	grid, months = calgrid.Build(seq)

	sum := calgrid.Summarize(seq)
	a.logger.Info("calendar window", "first", sum.First, "last", sum.Last)
	return seq, grid, months, nil
}

func (a *app) generate(ctx context.Context) error {
	seq, grid, months, err := a.load(ctx)
	if err != nil {
		return err
	}
	theme := a.resolveTheme()

	fonts := render.NewFontCache(render.DefaultFontPaths...)
	driver := &render.Driver{
		Renderer: render.NewRenderer(fonts),
		Workers:  a.opts.workers,
		Progress: func(startWeek int) {
			a.logger.Debug("rendered frame", "start_week", startWeek)
		},
	}

	a.logger.Info("rendering frames", "frames", render.MaxStartWeek+1, "theme", theme.Name, "workers", a.opts.workers)
	frames, err := driver.Generate(ctx, &grid, &months, theme)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	a.logger.Debug("font resolved", "source", fonts.Source(render.FontSize))

	if err := encode.ForPath(a.opts.output, theme.Palette()).Save(a.opts.output, frames); err != nil {
		return fmt.Errorf("save %s: %w", a.opts.output, err)
	}
	a.logger.Info("wrote animation", "path", a.opts.output, "frames", len(frames))

	fmt.Fprintln(a.out, renderSummary(calgrid.Summarize(seq), a.opts.output))
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config resolution.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "%s %s\n", config.AppName, version)
		},
	}
}

func (a *app) calendarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List Google calendars usable with --source gcal",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := gcal.NewService(cmd.Context())
			if err != nil {
				return err
			}
			cals, err := gcal.ListCalendars(cmd.Context(), srv)
			if err != nil {
				return err
			}
			s := newStyles()
			for _, c := range cals {
				line := s.header.Render(c.ID) + "  " + s.footer.Render(c.Summary)
				if c.Primary {
					line += "  " + s.help.Render("(primary)")
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}
}

func renderSummary(sum calgrid.Summary, output string) string {
	s := newStyles()
	busiest := "none"
	if sum.Busiest.Count > 0 {
		busiest = fmt.Sprintf("%s (%d)", sum.Busiest.Date, sum.Busiest.Count)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.header.Render(fmt.Sprintf("%s → %s", sum.First, sum.Last)),
		s.footer.Render(fmt.Sprintf("  %d contributions on %d days", sum.Total, sum.ActiveDays)),
		s.help.Render("  busiest "+busiest),
		s.control.Render("  "+output),
	)
}
