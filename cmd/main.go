package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/config"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/db"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/model"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/repository"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/service"
	transport "github.com/aachanin1/new-athlete-academy-sub000/internal/transport/http"
)

func main() {
	// 1. Загружаем конфиг из env.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(cfg.DB)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	sessionRepo := repository.NewGormSessionRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	enrollmentRepo := repository.NewGormEnrollmentRepository(gormDB)
	studentRepo := repository.NewGormStudentRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Сервисы ядра.
	availabilitySvc := service.NewAvailabilityService(sessionRepo, bookingRepo, enrollmentRepo, studentRepo, cfg.Booking)
	bookingSvc := service.NewBookingService(sessionRepo, bookingRepo, enrollmentRepo, eventRepo, cfg.Booking)

	// 6. HTTP-сервер.
	router := transport.NewRouter(cfg, availabilitySvc, bookingSvc)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	log.Printf("academy booking HTTP server listening on %s", cfg.HTTPAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
