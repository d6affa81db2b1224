package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"system_design_demos/artifact"
	"system_design_demos/config"
	"system_design_demos/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored demo pages",
	Long: `Starts the web server. GET / lists every stored demo, GET
/system_design/{name} returns one page. The server only reads the demos
directory; run "sdd generate" to add pages.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Log, os.Stderr)

		srv, err := server.New(artifact.NewLibrary(cfg.DemosDir), cfg.Server.Intro, logger)
		if err != nil {
			return err
		}
		listen := cfg.Server.Addr
		if serveAddr != "" {
			listen = serveAddr
		}
		if listen == "" {
			listen = ":8080"
		}

		httpSrv := &http.Server{
			Addr:              listen,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpSrv.ListenAndServe()
		}()

		out := cmd.OutOrStdout()
		base := "http://" + displayHost(listen)
		fmt.Fprintln(out, titleStyle.Render("System Design Demos Web Server"))
		fmt.Fprintf(out, "Server running at: %s/\n", base)
		fmt.Fprintf(out, "View demos at:     %s%s{topic}\n", base, server.RoutePrefix)
		fmt.Fprintf(out, "Example:           %s%scaching_strategy___cache_aside_pattern\n", base, server.RoutePrefix)
		logger.Info("starting web server", "addr", listen, "demos_dir", cfg.DemosDir)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down web server")
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func displayHost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "http listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
