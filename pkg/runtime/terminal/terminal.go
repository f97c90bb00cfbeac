package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nitmir/check-opnsense/pkg/client/opnsense"
	"github.com/nitmir/check-opnsense/pkg/models/domain"
	"github.com/nitmir/check-opnsense/pkg/services/check"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version reported by --version.
const Version = "0.2.0"

const envPrefix = "OPNSENSE"

// ClientFactory builds the API client for a parsed request.
type ClientFactory func(cfg opnsense.Config) check.APIClient

// CLI represents the command-line interface
type CLI struct {
	registry      check.Registry
	clientFactory ClientFactory
	reporter      *Reporter
	errOutput     io.Writer
	rootCmd       *cobra.Command
	viper         *viper.Viper
	configErr     error
	exitCode      int
}

// Options contain configuration for the CLI
type Options struct {
	Registry      check.Registry
	ClientFactory ClientFactory
	Output        io.Writer
	ErrOutput     io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = check.NewDefaultRegistry()
	}
	if opts.ClientFactory == nil {
		opts.ClientFactory = func(cfg opnsense.Config) check.APIClient {
			return opnsense.NewClient(cfg)
		}
	}

	cli := &CLI{
		registry:      opts.Registry,
		clientFactory: opts.ClientFactory,
		reporter:      NewReporter(opts.Output),
		errOutput:     opts.ErrOutput,
		viper:         viper.New(),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	return cli
}

// Execute runs the check with args and returns the process exit code.
func (cli *CLI) Execute(ctx context.Context, args []string) int {
	cli.exitCode = 0
	cli.rootCmd.SetArgs(args)

	err := cli.rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.exitCode
	}

	fmt.Fprintf(cli.errOutput, "Error: %v\n", err)

	var repErr *reportError
	if errors.As(err, &repErr) {
		return ExitEnvironment
	}
	return ExitUsage
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check_opnsense",
		Short:         "Check command for OPNsense firewall monitoring",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cli.run,
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringP("hostname", "H", "", "OPNsense hostname or ip address")
	flags.IntP("port", "p", 443, "OPNsense https-api port")
	flags.String("api-key", "", "API key (See OPNsense user manager)")
	flags.String("api-secret", "", "API secret (See OPNsense user manager)")
	flags.BoolP("insecure", "k", false, "Don't verify HTTPS certificate")
	flags.StringP("mode", "m", "", "Mode to use: "+strings.Join(modeNames(cli.registry), ", "))
	flags.Float64P("warning", "w", 0, "Warning threshold for check value")
	flags.Float64P("critical", "c", 0, "Critical threshold for check value")
	flags.Bool("debug", false, "Write debug logs to stderr")

	cli.viper.SetEnvPrefix(envPrefix)
	cli.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viper.AutomaticEnv()
	if err := cli.viper.BindPFlags(flags); err != nil {
		cli.configErr = fmt.Errorf("failed to bind flags: %w", err)
	}

	return cmd
}

func (cli *CLI) run(cmd *cobra.Command, _ []string) error {
	if cli.configErr != nil {
		return cli.configErr
	}

	req, err := cli.parseRequest()
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	logger := cli.newLogger()
	ctx := logger.WithContext(cmd.Context())

	logger.Debug().
		Str("hostname", req.Hostname).
		Int("port", req.Port).
		Str("mode", string(req.Mode)).
		Bool("tls_verify", req.TLSVerify).
		Msg("starting check")

	client := cli.clientFactory(opnsense.Config{
		Hostname:           req.Hostname,
		Port:               req.Port,
		APIKey:             req.APIKey,
		APISecret:          req.APISecret,
		InsecureSkipVerify: !req.TLSVerify,
	})

	verdict, err := check.NewController(cli.registry, client).Run(ctx, req.Mode)
	if err != nil {
		logger.Error().Err(err).Msg("check aborted")
		return err
	}

	code, err := cli.reporter.Report(verdict)
	if err != nil {
		return err
	}
	cli.exitCode = code
	return nil
}

func (cli *CLI) parseRequest() (domain.CheckRequest, error) {
	v := cli.viper

	req := domain.CheckRequest{
		Hostname:  v.GetString("hostname"),
		Port:      v.GetInt("port"),
		APIKey:    v.GetString("api-key"),
		APISecret: v.GetString("api-secret"),
		TLSVerify: !v.GetBool("insecure"),
		Mode:      domain.Mode(v.GetString("mode")),
	}
	if v.IsSet("warning") {
		req.Warning = domain.Float(v.GetFloat64("warning"))
	}
	if v.IsSet("critical") {
		req.Critical = domain.Float(v.GetFloat64("critical"))
	}

	return req, req.Validate()
}

func (cli *CLI) newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if cli.viper.GetBool("debug") {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: cli.errOutput, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func modeNames(registry check.Registry) []string {
	var names []string
	for _, m := range registry.ListModes() {
		names = append(names, string(m))
	}
	return names
}
