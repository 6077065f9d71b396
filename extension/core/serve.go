// serve.go implements the "stash serve" command for the HTTP API.
//
// Separated from extension.go because serve has unique lifecycle
// requirements. Unlike other commands that run and exit, serve blocks until
// interrupted, handling HTTP requests.
//
// Design: Server settings layer the stash config under STASH_* environment
// variables and the --addr flag via viper, so a deployment can override the
// listen address or token secret without touching config.yaml.

package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jpl-au/stash/cmd"
	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/api"
	"github.com/jpl-au/stash/internal/auth"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrNoSecret is returned when serve has no key to verify session tokens.
var ErrNoSecret = errors.New("auth.secret not set (stash config auth.secret <value> or STASH_AUTH_SECRET)")

func (e *Extension) newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: heredoc.Doc(`
			Start the HTTP API for notes and bookmarks.

			Requests are authenticated with an HMAC-signed session token, read
			from the session cookie or an "Authorization: Bearer" header. The
			token's id claim must be a registered user (stash user add <id>).

			Settings, highest precedence first:
			  --addr flag
			  STASH_SERVER_ADDR, STASH_AUTH_SECRET, STASH_AUTH_COOKIE
			  stash config (server.addr, auth.secret, auth.cookie)

			Examples:
			  stash serve
			  stash serve --addr :9000
			  STASH_AUTH_SECRET=... stash serve
		`),
		Args: cobra.NoArgs,
		RunE: e.runServe,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (default from server.addr)")
	return c
}

// settings layers env and flags over the loaded config.
func (e *Extension) settings(c *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("STASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("server.addr", e.cfg.Addr())
	v.SetDefault("auth.secret", e.cfg.Auth.Secret)
	v.SetDefault("auth.cookie", e.cfg.Cookie())
	_ = v.BindPFlag("server.addr", c.Flags().Lookup(extension.FlagAddr))
	return v
}

func (e *Extension) runServe(c *cobra.Command, _ []string) error {
	v := e.settings(c)
	addr := v.GetString("server.addr")
	secret := v.GetString("auth.secret")
	if secret == "" {
		return cmd.PrintJSONError(ErrNoSecret)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	opts := api.Options{
		MaxBody: e.cfg.MaxContent() + api.MaxUploads*e.cfg.MaxFileSize(),
	}
	if e.cfg.Backend() == config.BackendLocal {
		opts.Files = repo.Files(e.dir)
	}
	srv := api.New(e.svc, auth.NewResolver(secret, v.GetString("auth.cookie"), e.svc), opts)

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.ErrOrStderr(), "stash: listening on %s\n", addr)
	err := srv.ListenAndServe(ctx, addr)
	log.Event("core:serve", "serve").Detail("addr", addr).Write(err)
	return err
}
