package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ERA5758/Paguyuban/internal/auth"
	"github.com/ERA5758/Paguyuban/internal/config"
	"github.com/ERA5758/Paguyuban/internal/httpx"
	kafkax "github.com/ERA5758/Paguyuban/internal/kafka"
	"github.com/ERA5758/Paguyuban/internal/mongox"
	"github.com/ERA5758/Paguyuban/internal/postgres"
	"github.com/ERA5758/Paguyuban/internal/pujasera"
	"github.com/ERA5758/Paguyuban/internal/queue"
	"github.com/ERA5758/Paguyuban/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB transaksi & pelanggan
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Mongo: collection antrean order (dikonsumsi worker eksternal)
	mc, err := mongox.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, satu per topic
	pQueued := kafkax.NewProducer(cfg.KafkaBrokers, pujasera.TopicOrderQueued, 1024)
	pQueued.Start()
	pReady := kafkax.NewProducer(cfg.KafkaBrokers, pujasera.TopicTenantReady, 1024)
	pReady.Start()

	// Repo, queue writer, verifier token
	repo := &pujasera.Repo{DB: db}
	writer := queue.NewWriter(mc.Database(cfg.MongoDatabase))
	verifier := &auth.CachedVerifier{
		Inner: auth.NewHTTPVerifier(cfg.AuthVerifyURL),
		Redis: rdb,
	}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Queue:    writer,
		Store:    repo,
		Producer: pQueued,
		Redis:    rdb,
		Service:  cfg.ServiceName,
		Dispatch: cfg.DefaultDispatch,
	}
	oh.Register(router)
	kh := &httpx.KitchenHandler{
		Store:    repo,
		Verifier: verifier,
		Producer: pReady,
		Service:  cfg.ServiceName,
	}
	kh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	pQueued.Close() // tutup inbox -> flush & close writer
	pReady.Close()
	pQueued.WaitClosed()
	pReady.WaitClosed()
}
