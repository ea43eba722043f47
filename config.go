/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Seednode/bingo/games/bingo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	datasets       string
	port           int
	prefix         string
	profile        bool
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	url            string
	verbose        bool
	version        bool

	catalog *bingo.Catalog
	logger  zerolog.Logger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.sessionTimeout < 0 {
		return fmt.Errorf("invalid session timeout (must not be negative): %s", c.sessionTimeout)
	}
	if c.url != "" {
		u, err := url.Parse(c.url)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid url (must be an absolute http or https URL): %q", c.url)
		}
	}
	return c.validateDatasets()
}

// validateDatasets checks the settings every subcommand shares.
func (c *Config) validateDatasets() error {
	if c.datasets != "" {
		if _, err := os.Stat(c.datasets); err != nil {
			return fmt.Errorf("invalid datasets file: %w", err)
		}
	}
	return nil
}

// baseURL returns the scheme and host share links point at: --url when set,
// otherwise the request's host under this server's own scheme.
func (c *Config) baseURL(host string) string {
	if c.url != "" {
		return strings.TrimSuffix(c.url, "/")
	}
	return c.scheme() + "://" + host
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadCatalog builds the dataset catalog from the builtin datasets plus
// anything in --datasets.
func (c *Config) loadCatalog() error {
	datasets := bingo.Builtin()

	if c.datasets != "" {
		extra, err := bingo.LoadDatasets(c.datasets)
		if err != nil {
			return err
		}
		datasets = bingo.Merge(datasets, extra)
	}

	catalog, err := bingo.NewCatalog(datasets)
	if err != nil {
		return err
	}

	c.catalog = catalog

	return nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: logDate,
		NoColor:    true,
	}).With().Timestamp().Logger()
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "bingo",
		Short:         "Shareable Bingo boards, with the whole game state kept in the URL.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.logger = newLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if err := cfg.loadCatalog(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	normalize := func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}

	// Shared with the encode and decode subcommands.
	pfs := cmd.PersistentFlags()
	pfs.SetNormalizeFunc(normalize)

	pfs.StringVar(&cfg.datasets, "datasets", "", "yaml, json or toml file of additional datasets (env: BINGO_DATASETS)")
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: BINGO_VERBOSE)")

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: BINGO_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: BINGO_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: BINGO_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: BINGO_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle board connections are closed (env: BINGO_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: BINGO_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: BINGO_TLS_KEY)")
	fs.StringVar(&cfg.url, "url", "", "public base URL used in share links, e.g. https://bingo.example.com (env: BINGO_URL)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: BINGO_VERSION)")

	for _, set := range []*pflag.FlagSet{pfs, fs} {
		set.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
			_ = v.BindEnv(f.Name)
			if !f.Changed && v.IsSet(f.Name) {
				_ = set.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
			}
		})
	}

	cmd.AddCommand(newEncodeCmd(cfg), newDecodeCmd(cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("bingo v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
