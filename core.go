package main

import (
	"context"
	"log"
	"time"

	"github.com/oversightlabs/approval-service/internal/workflow"
	"github.com/oversightlabs/approval-service/utils"
)

// RunCoreLogic keeps the service's health status in sync with the
// project store. It pings the backend on a fixed interval and flips
// the /service report between OK and DEGRADED accordingly.
func RunCoreLogic(ctx context.Context, store workflow.Store) error {
	if err := store.Ping(ctx); err != nil {
		utils.SetHealthStatus("ERROR", "Project store unreachable: "+err.Error())
		return err
	}

	utils.SetHealthStatus("OK", "Service is running normally")
	log.Println("Core Logic: Initialization complete, service is healthy")

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Core Logic: Shutdown signal received, cleaning up...")
			utils.SetHealthStatus("SHUTTING_DOWN", "Core logic is shutting down")
			return nil

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := store.Ping(pingCtx)
			cancel()

			if err != nil {
				log.Printf("Core Logic: Store ping failed: %v", err)
				utils.SetHealthStatus("DEGRADED", "Project store unreachable: "+err.Error())
			} else {
				utils.SetHealthStatus("OK", "Service is running normally")
			}
		}
	}
}
