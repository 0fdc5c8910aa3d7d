package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hcfisio/ponto-backend-go/internal/config"
	appHTTP "github.com/hcfisio/ponto-backend-go/internal/handler/http"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/cron"
	"github.com/hcfisio/ponto-backend-go/internal/repository/sheets"
	alunoService "github.com/hcfisio/ponto-backend-go/internal/service/aluno"
	escalaService "github.com/hcfisio/ponto-backend-go/internal/service/escala"
	pontoService "github.com/hcfisio/ponto-backend-go/internal/service/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	client := sheets.NewClient(cfg.Sheets.BaseURL, cfg.Sheets.Timeout)

	sess := session.New(client)
	if err := sess.Load(context.Background()); err != nil {
		// Start anyway; the daily reload job and per-request fetches retry
		slog.Error("initial sheet load failed", "error", err)
	}

	cache := pontoService.NewCache()
	escalaSvc := escalaService.NewEscalaService(sess, cache)
	pontoSvc := pontoService.NewPontoService(
		cache,
		client,
		escalaSvc,
		cfg.Ponto.LateThresholdMinutes,
		cfg.Ponto.ExpectedHeadcount,
	)
	pontoSvc.Seed(sess.Snapshot().Ponto)
	alunoSvc := alunoService.NewAlunoService(sess)

	pontoHandler := appHTTP.NewPontoHandler(pontoSvc)
	escalaHandler := appHTTP.NewEscalaHandler(escalaSvc)
	alunoHandler := appHTTP.NewAlunoHandler(alunoSvc, escalaSvc)

	router := appHTTP.NewRouter(cfg.App.Env, pontoHandler, escalaHandler, alunoHandler)

	scheduler := cron.NewScheduler()
	pontoJobs := cron.NewPontoJobs(pontoSvc, sess, cfg.Ponto.RefreshInterval)
	pontoJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
