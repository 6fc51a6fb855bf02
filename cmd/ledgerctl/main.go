package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/journal"
	"crowdfund/internal/ledger"
	"crowdfund/internal/middleware"
)

func main() {
	var (
		actionFlag string
		subFlag    string
		ttlFlag    time.Duration
	)

	flag.StringVar(&actionFlag, "action", "replay", "replay | token")
	flag.StringVar(&subFlag, "sub", "", "principal to issue a token for (token action)")
	flag.DurationVar(&ttlFlag, "ttl", 24*time.Hour, "token lifetime (token action)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	switch strings.ToLower(strings.TrimSpace(actionFlag)) {
	case "token":
		sub := strings.TrimSpace(subFlag)
		if sub == "" {
			exitWithError(errors.New("-sub is required for the token action"))
		}
		token, err := middleware.SignToken(cfg.JWTSecret, domain.Principal(sub), ttlFlag, time.Now())
		if err != nil {
			exitWithError(err)
		}
		fmt.Println(token)

	case "replay":
		logger := infra.NewLogger("cli").With().Str("cmd", "ledgerctl").Logger()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		stores, err := repo.Open(ctx, cfg, logger)
		if err != nil {
			exitWithError(fmt.Errorf("failed to open journal store: %w", err))
		}
		defer stores.Close()

		state, history, err := journal.Recover(ctx, stores.Journal)
		if err != nil {
			exitWithError(err)
		}
		if err := writeSummary(os.Stdout, state, history); err != nil {
			exitWithError(err)
		}

	default:
		exitWithError(fmt.Errorf("unsupported action %q", actionFlag))
	}
}

type projectSummary struct {
	domain.Project
	Status        domain.ProjectStatus `json:"status"`
	Donors        int                  `json:"donors"`
	Contributions domain.Amount        `json:"contributions"`
}

type summary struct {
	Notifications int              `json:"notifications"`
	LastSeq       uint64           `json:"last_seq"`
	Projects      []projectSummary `json:"projects"`
}

// writeSummary prints every restored project as indented JSON.
func writeSummary(w io.Writer, state *ledger.State, history []domain.Notification) error {
	out := summary{Notifications: len(history), Projects: []projectSummary{}}
	if len(history) > 0 {
		out.LastSeq = history[len(history)-1].Seq
	}
	for _, p := range state.Projects.List() {
		out.Projects = append(out.Projects, projectSummary{
			Project:       p,
			Status:        p.Status(),
			Donors:        len(state.Contributions.Donors(p.ID)),
			Contributions: state.Contributions.Total(p.ID),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
