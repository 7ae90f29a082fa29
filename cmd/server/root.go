package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"quoteboard/internal/config"
	"quoteboard/internal/ids"
	"quoteboard/internal/logging"
	"quoteboard/internal/models"
	"quoteboard/internal/repository"
	"quoteboard/internal/store"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	log logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var cfgFile string

	root := &cobra.Command{
		Use:   "quoteboard",
		Short: "A small board for sharing quotes",
		Long: `quoteboard serves a server-rendered board where visitors post, edit and
delete short quotes, plus a contact form. Both collections are stored as
JSON files in the data directory.

Configuration is read from quoteboard.yml (or --config / QUOTEBOARD_CONFIG_FILE),
QUOTEBOARD_* environment variables and flags, in increasing precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cfgFile, cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./quoteboard.yml)")
	root.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")

	serve := newServeCmd(a)
	root.AddCommand(serve, newCheckCmd(a), newExportCmd(a), newConfigCmd(a))

	// Running the binary without a subcommand serves.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

var flagKeys = map[string]string{
	"log-level":  "log.level",
	"addr":       "server.addr",
	"env":        "server.environment",
	"static-dir": "server.static_dir",
	"data-dir":   "data.dir",
	"watch":      "data.watch",
}

// bindFlags maps the flags a command defines onto their config keys. Only
// flags the user actually set override file and environment values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil || !f.Changed {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

func (a *app) load(cfgFile string, cmd *cobra.Command) error {
	a.v = config.NewViper(cfgFile)
	if err := config.Read(a.v); err != nil {
		return err
	}
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.LoggerConfig())
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug(cmd.Context(), "using config file", "path", used)
	}
	return nil
}

func (a *app) postStore() *store.JSONFile[models.Post] {
	return store.NewJSONFile(a.cfg.PostsPath(), store.Options[models.Post]{
		Default:   func() []models.Post { return repository.SeedPosts(ids.Default) },
		OnCorrupt: store.UseDefault,
		Logger:    a.log,
	})
}

func (a *app) contactStore() *store.JSONFile[models.Contact] {
	return store.NewJSONFile(a.cfg.ContactsPath(), store.Options[models.Contact]{
		OnCorrupt: store.Fail,
		Logger:    a.log,
	})
}

// readers returns repositories over the configured files without creating
// or seeding anything.
func (a *app) readers() (*repository.Posts, *repository.Contacts) {
	return repository.NewPosts(a.postStore(), ids.Default, a.log),
		repository.NewContacts(a.contactStore(), ids.Default, time.Now, a.log)
}

// repositories opens the data directory and seeds the posts file if needed.
func (a *app) repositories(ctx context.Context) (*repository.Posts, *repository.Contacts, error) {
	if err := store.EnsureDir(a.cfg.Data.Dir); err != nil {
		return nil, nil, err
	}
	posts := repository.NewPosts(a.postStore(), ids.Default, a.log)
	if err := posts.Init(ctx); err != nil {
		return nil, nil, fmt.Errorf("init posts: %w", err)
	}
	contacts := repository.NewContacts(a.contactStore(), ids.Default, time.Now, a.log)
	return posts, contacts, nil
}
