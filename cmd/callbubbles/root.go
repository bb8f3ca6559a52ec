package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/callctl"
	"github.com/lixenwraith/callbubbles/config"
	"github.com/lixenwraith/callbubbles/observability"
)

// app carries state resolved once by the root command for its subcommands
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "callbubbles",
		Short: "Floating call bubbles driven by a spring physics model",
		Long: `callbubbles renders phone calls as draggable bubbles. Contacts are dropped
onto actions to hold, transfer or hang up a call; incoming calls are accepted
or refused by dragging the caller onto a target.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Root().PersistentFlags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("log-level", "", "log level override (debug, info, warn, error)")
	pf.String("log-file", "", "write JSON logs to this rotating file")

	root.AddCommand(newRunCmd(a), newSimCmd(a))
	return root
}

// load resolves configuration from defaults, file, environment and flags, then starts logging
func (a *app) load(flags *pflag.FlagSet) error {
	v := config.NewViper()
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", a.cfgFile, err)
		}
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		v.Set("logger.level", f.Value.String())
	}
	if f := flags.Lookup("log-file"); f != nil && f.Changed {
		v.Set("logger.log_file", f.Value.String())
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	observability.GetLogger().Debug("configuration loaded", zap.String("file", a.cfgFile))
	return nil
}

// newPresenter builds the presenter and its model from the loaded configuration
func newPresenter(cfg *config.Config, ctl callctl.Controller, logger *zap.Logger, opts ...bubble.Option) *callctl.Presenter {
	pc := callctl.PresenterConfig{
		UserName:       cfg.Policy.UserName,
		Density:        cfg.Display.Density,
		BubbleRadius:   cfg.Display.BubbleRadius,
		ExpandedRadius: cfg.Display.ExpandedRadius,
		AttractorSize:  cfg.Display.AttractorSize,
		EjectOnBorder:  cfg.Policy.EjectOnBorder,
	}
	all := append([]bubble.Option{
		bubble.WithTuning(cfg.Physics.Tuning()),
		bubble.WithActionFade(cfg.Actions.AppearTime, cfg.Actions.DisappearTime),
	}, opts...)
	return callctl.NewPresenter(ctl, pc, logger, all...)
}

var contactNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

// contactName picks a display name for the i-th simulated call
func contactName(i int) (number, name string) {
	return fmt.Sprintf("+1555%04d", 100+i), contactNames[i%len(contactNames)]
}
