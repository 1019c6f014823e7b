// Package citecmd implements the citebook root command: classify the input,
// fetch its metadata and print one wiki citation template.
package citecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"citebook/src/internal/config"
	"citebook/src/internal/debugdump"
	"citebook/src/internal/doi"
	"citebook/src/internal/googlebooks"
	"citebook/src/internal/httpx"
	"citebook/src/internal/identifier"
	"citebook/src/internal/logging"
	"citebook/src/internal/wikicite"
)

// UsageLine is printed when no input is given.
const UsageLine = "Usage: citebook <url_or_doi> [--debug]"

// ErrUsage is returned when the input argument is missing.
var ErrUsage = errors.New("missing <url_or_doi> argument")

var client httpx.Doer = &http.Client{}

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// New returns the root command.
func New() *cobra.Command {
	var (
		debug      bool
		configPath string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "citebook <url_or_doi>",
		Short: "Turn a Google Books URL or a DOI into a wiki citation template",
		Long: `citebook resolves a Google Books URL (via the Books API) or a DOI (via
doi.org content negotiation) and prints a {{cite book}} or {{cite journal}}
template with an access-date of today.`,
		Example: `  citebook https://books.google.com/books?id=ttMsCwAAQBAJ
  citebook 10.1038/nphys1170
  citebook https://doi.org/10.1007/978-3-319-24277-4_9 --debug`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrUsage
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if debug {
				cfg.Debug = true
			}
			switch {
			case logLevel != "":
				cfg.LogLevel = logLevel
			case cfg.Debug:
				cfg.LogLevel = "debug"
			}
			log := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			citation, err := Run(ctx, cfg, log, cmd.OutOrStdout(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), citation)
			return err
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "write the raw metadata to the debug file and log each step")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CITEBOOK_CONFIG)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}

// Run classifies input, fetches its metadata and returns the rendered citation.
// In debug mode the raw metadata is written to cfg.DebugFile and a confirmation
// line goes to out.
func Run(ctx context.Context, cfg config.Config, log zerolog.Logger, out io.Writer, input string) (string, error) {
	id, err := identifier.Classify(input)
	if err != nil {
		return "", err
	}
	log.Debug().Str("kind", id.Kind.String()).Str("id", id.Value).Msg("classified input")
	doer := httpx.WithUserAgent(client, cfg.UserAgent)

	var c wikicite.Citation
	switch id.Kind {
	case identifier.DOI:
		w, raw, err := doi.NewClient(doer, cfg.DOIResolver, log).FetchWork(ctx, id.Value)
		dump(cfg, log, out, raw)
		if err != nil {
			return "", err
		}
		if c, err = wikicite.FromWork(w, id.Value); err != nil {
			return "", err
		}
	case identifier.VolumeID:
		v, raw, err := googlebooks.NewClient(doer, cfg.GoogleBooksEndpoint, log).FetchVolume(ctx, id.Value)
		dump(cfg, log, out, raw)
		if err != nil {
			return "", err
		}
		c = wikicite.FromVolume(*v.VolumeInfo, id.Value)
	default:
		return "", fmt.Errorf("unknown identifier kind %v", id.Kind)
	}
	log.Debug().Str("template", c.Template).Msg("rendered citation")
	return c.String(), nil
}

// dump writes raw metadata when debugging. Failures are logged, not returned.
func dump(cfg config.Config, log zerolog.Logger, out io.Writer, raw []byte) {
	if !cfg.Debug || raw == nil {
		return
	}
	if err := debugdump.Write(cfg.DebugFile, raw); err != nil {
		log.Error().Err(err).Str("path", cfg.DebugFile).Msg("could not write debug metadata")
		return
	}
	_, _ = fmt.Fprintf(out, "Metadata written to %s\n", cfg.DebugFile)
}

// Message converts a run error into the line printed before exiting non-zero.
func Message(err error) string {
	var unsupported *wikicite.UnsupportedTypeError
	switch {
	case errors.Is(err, ErrUsage):
		return UsageLine
	case errors.Is(err, identifier.ErrNoVolumeID):
		return "Error: Could not extract volume ID from the URL."
	case errors.As(err, &unsupported):
		return unsupported.Error()
	default:
		return "Error: " + err.Error()
	}
}
