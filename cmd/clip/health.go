package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dreamware/clipd/internal/client"
)

var (
	healthWatch    bool
	healthInterval time.Duration
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long: `Check whether the clipd server is reachable and healthy.

With --watch, keep polling and report every health transition until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVarP(&healthWatch, "watch", "w", false, "Keep polling and report transitions")
	healthCmd.Flags().DurationVar(&healthInterval, "interval", 5*time.Second, "Polling interval for --watch")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	c := newClient()

	if !healthWatch {
		if err := c.Health(cmd.Context()); err != nil {
			return fmt.Errorf("%s is unhealthy: %w", c.BaseURL(), err)
		}
		fmt.Printf("%s is healthy\n", c.BaseURL())
		return nil
	}

	monitor := client.NewHealthMonitor(c, zap.NewNop(), healthInterval)
	monitor.SetOnChange(func(status client.Status) {
		fmt.Printf("%s %s is %s\n",
			time.Now().Format("15:04:05"), c.BaseURL(), status)
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go monitor.Start(cmd.Context())
	defer monitor.Stop()

	<-stop
	return nil
}
