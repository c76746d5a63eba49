package commands

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/onboarding"
	"github.com/trezcool/elevate/services/account"
	logsvc "github.com/trezcool/elevate/services/logger"
	"github.com/trezcool/elevate/storage/session"
)

// app holds the collaborators shared by the commands.
// Fields already set are kept by the pre-run hook.
type app struct {
	conf     *core.Config
	store    *session.Store
	accounts onboarding.AccountCreator
	logger   core.Logger

	ownsStore bool

	apiURL  string
	dataDir string
}

func Execute() error {
	return newRootCmd(new(app)).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "elevate",
		Short:        "Sign up to Elevate from your terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setUp(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.ownsStore {
				return nil
			}
			return a.store.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (default from config, eg. http://localhost:4000)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "local data dir (default <user config dir>/elevate)")

	root.AddCommand(onboardCmd(a), whoamiCmd(a), resetCmd(a))
	return root
}

func (a *app) setUp(ctx context.Context, stderr io.Writer) error {
	if a.conf == nil {
		a.conf = core.NewConfig()
	}
	if a.logger == nil {
		logger := logsvc.NewRollbarLogger(log.New(stderr, "ELEVATE : ", log.LstdFlags), a.conf)
		logger.Enable(!a.conf.Debug)
		a.logger = logger
	}
	if a.store == nil {
		dataDir := a.dataDir
		if dataDir == "" {
			dataDir = a.conf.Client.DataDir
		}
		path, err := session.DefaultPath(dataDir)
		if err != nil {
			return err
		}
		if a.store, err = session.Open(ctx, path); err != nil {
			return err
		}
		a.ownsStore = true
	}
	if a.accounts == nil {
		apiURL := a.apiURL
		if apiURL == "" {
			apiURL = a.conf.Client.APIURL
		}
		a.accounts = account.NewHTTP(apiURL)
	}
	return nil
}

// introDelay is zero when stdin is not a terminal.
func (a *app) introDelay(in io.Reader) time.Duration {
	if f, ok := in.(*os.File); !ok || !isTerminal(int(f.Fd())) {
		return 0
	}
	if a.conf.Client.IntroDelay > 0 {
		return a.conf.Client.IntroDelay
	}
	return onboarding.IntroDelay
}
