// Command escalation-levels shows the active escalation policy or replaces
// it with the levels from configuration. The scheduler reads the
// escalation_levels table first and falls back to configuration only while
// the table holds no active rows.
//
// Usage:
//
//	escalation-levels            print the levels currently in effect
//	escalation-levels --apply    write the configured levels to the table
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres"
	"github.com/heartmarshall/correspondence-backend/internal/adapter/postgres/escalationlevel"
	"github.com/heartmarshall/correspondence-backend/internal/app"
	"github.com/heartmarshall/correspondence-backend/internal/config"
	"github.com/heartmarshall/correspondence-backend/internal/domain"
	"github.com/heartmarshall/correspondence-backend/internal/service/escalation"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: $CONFIG_PATH or ./config.yaml)")
	apply := flag.Bool("apply", false, "replace the active levels with the configured ones")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	configured, err := config.PolicyFromLevels(cfg.Escalation.EffectiveLevels())
	if err != nil {
		log.Fatalf("configured levels: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := escalationlevel.New(pool)

	if *apply {
		if err := repo.Replace(ctx, configured); err != nil {
			pool.Close()
			log.Fatalf("replace escalation levels: %v", err)
		}
		fmt.Printf("%d escalation levels applied.\n", configured.MaxLevel())
	}

	policy, err := escalation.NewPolicyCache(logger, repo, configured, 0).Get(ctx)
	if err != nil {
		pool.Close()
		log.Fatalf("load escalation policy: %v", err)
	}
	printPolicy(policy)
}

func printPolicy(p domain.EscalationPolicy) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tTHRESHOLD\tBUMP\tSTATUS\tTHROTTLE\tASSIGNEE\tMANAGER\tADMINS\tREASSIGN\tSEVERITY")
	for _, l := range p.Levels {
		fmt.Fprintf(w, "%d\t%dm\t+%d\t%s\t%dm\t%t\t%t\t%t\t%t\t%s\n",
			l.Level, l.ThresholdMinutes, l.PriorityBump, l.StatusOnReach, l.ThrottleMinutes,
			l.NotifyAssignee, l.NotifyManager, l.NotifyAdmins, l.AutoReassign, l.Severity)
	}
	w.Flush() //nolint:errcheck
}
