package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/ericfisherdev/tprmkit/internal/adapter/driving/http"
	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/diagram"
)

// DiagramOptions wires the tprmdiagrams command tree to its environment.
// Zero values select the process defaults.
type DiagramOptions struct {
	Out        io.Writer
	Err        io.Writer
	Clock      clock.Clock
	MermaidCLI *diagram.MermaidCLI
	// Listening, when set, is called with the bound address once serve is
	// accepting connections.
	Listening func(addr net.Addr)
}

type diagramApp struct {
	opts    DiagramOptions
	verbose bool
	printer *printer
}

// NewDiagramsCommand builds the tprmdiagrams root command.
func NewDiagramsCommand(opts DiagramOptions) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.MermaidCLI == nil {
		opts.MermaidCLI = diagram.NewMermaidCLI()
	}

	a := &diagramApp{opts: opts, printer: newPrinter(opts.Out)}

	cmd := &cobra.Command{
		Use:           "tprmdiagrams",
		Short:         "Generate and serve TPRM process flow diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every file written")

	cmd.AddCommand(a.newGenerateCommand(), a.newServeCommand())
	return cmd
}

func (a *diagramApp) logger() *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.opts.Err, &slog.HandlerOptions{Level: level}))
}

func (a *diagramApp) generator() *diagram.Generator {
	return diagram.NewGenerator(a.opts.MermaidCLI, a.opts.Clock, a.logger())
}

func (a *diagramApp) newGenerateCommand() *cobra.Command {
	var outputDir, format string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write Mermaid sources, the HTML viewer, images, and a README index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := diagram.ParseFormat(format)
			if err != nil {
				return err
			}

			res, err := a.generator().Generate(cmd.Context(), diagram.Options{OutputDir: outputDir, Format: f})
			if err != nil {
				return err
			}

			a.printer.success("Generated %d files in %s", len(res.Files), outputDir)
			if f == diagram.FormatHTML || f == diagram.FormatAll {
				a.printer.field("Viewer", filepath.Join(outputDir, diagram.ViewerFile))
			}
			a.printer.field("Index", filepath.Join(outputDir, diagram.IndexFile))
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "./diagrams", "Directory for generated files")
	cmd.Flags().StringVar(&format, "format", string(diagram.FormatAll), "Output format: html, mermaid, png, svg, all")
	return cmd
}

func (a *diagramApp) newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML viewer and Mermaid sources over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	return cmd
}

func (a *diagramApp) serve(ctx context.Context, addr string) error {
	logger := a.logger()
	handler := httphandler.NewServeMux(httphandler.NewHandler(a.generator(), logger), logger)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if a.opts.Listening != nil {
		a.opts.Listening(ln.Addr())
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
