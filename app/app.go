package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-rental/config"
	"github.com/Astemirdum/library-rental/internal/handler"
	"github.com/Astemirdum/library-rental/internal/media"
	"github.com/Astemirdum/library-rental/internal/repository"
	"github.com/Astemirdum/library-rental/internal/server"
	"github.com/Astemirdum/library-rental/internal/service"
	"github.com/Astemirdum/library-rental/migrations"
	"github.com/Astemirdum/library-rental/pkg/logger"
	"github.com/Astemirdum/library-rental/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "rental")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	photoStore, err := media.NewStore(cfg.Media.BaseDir, "students")
	if err != nil {
		log.Fatal("photo store", zap.Error(err))
	}
	coverStore, err := media.NewStore(cfg.Media.BaseDir, "books")
	if err != nil {
		log.Fatal("cover store", zap.Error(err))
	}

	studentSvc := service.NewStudent(repo, photoStore, cfg.Server.BaseURL, log)
	bookSvc := service.NewBook(repo, coverStore, cfg.Server.BaseURL, log)
	rentalSvc := service.NewRental(repo, cfg.Server.BaseURL, log)

	h := handler.New(studentSvc, bookSvc, rentalSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
