package main

import (
	"fmt"
	"os"

	"github.com/expensetrackr/reconcile-backend/internal/cli"
	"github.com/expensetrackr/reconcile-backend/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseReconcileFlags()
	cfg := config.LoadOrEnv()

	if err := cli.RunReconcile(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
