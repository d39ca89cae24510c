package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/audio"
	"github.com/jscyril/mediacore/internal/catalog"
	"github.com/jscyril/mediacore/internal/config"
	"github.com/jscyril/mediacore/internal/log"
	"github.com/jscyril/mediacore/internal/notify"
	"github.com/jscyril/mediacore/internal/playback"
	"github.com/jscyril/mediacore/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	karaoke    bool
	catalogURL string
	dirs       []string
	query      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "player",
		Short:         "Play a wellness and karaoke catalog with hover previews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	pf.BoolVarP(&flags.karaoke, "karaoke", "k", false, "load the karaoke catalog")
	pf.StringVar(&flags.catalogURL, "catalog-url", "", "remote catalog endpoint")
	pf.StringSliceVarP(&flags.dirs, "dir", "d", nil, "music directory to scan (repeatable)")
	pf.StringVarP(&flags.query, "query", "q", "", "query sent to the remote catalog")

	cmd.AddCommand(newCatalogCmd(flags), newLyricsCmd())
	return cmd
}

// app bundles what every command needs after configuration.
type app struct {
	cfg      *config.Config
	fs       afero.Fs
	logClose io.Closer
}

func setup(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	fs := afero.NewOsFs()
	path := flags.configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.LoadOrCreate(fs, path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("karaoke") {
		cfg.Karaoke = flags.karaoke
	}
	if f.Changed("catalog-url") {
		cfg.CatalogURL = flags.catalogURL
	}
	if f.Changed("dir") {
		cfg.MusicDirectories = flags.dirs
	}

	closer, err := log.Setup(log.Options{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
		File:    cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	return &app{cfg: cfg, fs: fs, logClose: closer}, nil
}

func (a *app) Close() {
	if a.logClose != nil {
		a.logClose.Close()
	}
}

// newStore scans the configured directories and wires the remote source.
func (a *app) newStore(ctx context.Context, query string) *catalog.Store {
	var local []api.CatalogItem
	if len(a.cfg.MusicDirectories) > 0 {
		scanner := catalog.NewScanner(a.fs, 0)
		items, errs := scanner.ScanAll(ctx, a.cfg.MusicDirectories)
		for _, err := range errs {
			log.WithError(err).Warnf("scan")
		}
		local = items
	}

	opts := catalog.Options{
		Local:   local,
		Query:   query,
		Tagger:  catalog.DefaultTagger(),
		Karaoke: a.cfg.Karaoke,
	}
	if a.cfg.CatalogURL != "" {
		opts.Source = &catalog.HTTPSource{BaseURL: a.cfg.CatalogURL}
	}
	return catalog.NewStore(opts)
}

func (a *app) notifier() notify.Notifier {
	if a.cfg.Notifications.Desktop {
		return notify.Multi{notify.Log{}, notify.NewDesktop(a.cfg.Notifications.AppName)}
	}
	return notify.Log{}
}

func runPlayer(cmd *cobra.Command, flags *rootFlags) error {
	a, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	volume := a.cfg.DefaultVolume
	ctl := playback.New(playback.Options{
		Backend:             audio.NewBeepBackend(a.fs),
		Notifier:            a.notifier(),
		Volume:              &volume,
		PreviewVolume:       a.cfg.PreviewVolume,
		TickInterval:        a.cfg.TickInterval(),
		KaraokeTickInterval: a.cfg.KaraokeTickInterval(),
	})
	defer ctl.Close()

	ctl.LoadCatalog(ctx, a.newStore(ctx, flags.query))

	go func() {
		<-ctx.Done()
		ctl.Close()
	}()

	if err := ui.Run(ctl, a.cfg.KeyBindings); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
