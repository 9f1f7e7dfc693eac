// Утилита миграций: применяет goose-миграции из embed-ФС.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
package main

import (
	"log"
	"os"

	"contact-system/migrations"
	appconfig "contact-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := appconfig.New()

	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось установить диалект: %v", err)
	}

	if err := goose.Run(command, db, "."); err != nil {
		log.Fatalf("миграция завершилась с ошибкой: %v", err)
	}

	log.Printf("✅ goose %s: выполнено", command)
}
