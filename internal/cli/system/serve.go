package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/recovr/internal/cli"
	"github.com/julianstephens/recovr/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${server_addr}"`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lockPath := server.LockfilePath(ctx.ConfigDir)
	fmt.Printf("Serving recovr API on http://%s (Ctrl+C to stop)\n", cmd.Addr)
	if err := server.New(ctx.Store, ctx.Engine).Run(sigCtx, cmd.Addr, lockPath); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	fmt.Println("Server stopped.")
	return nil
}

