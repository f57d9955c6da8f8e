// Command migrate applies or rolls back the embedded schema migrations.
//
//	go run ./go/internal/tools/migrate -direction up
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/dbconfig"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	dsn := dbconfig.ResolveDSN(os.Getenv("DATABASE_URL"))
	if err := db.Migrate(dsn, *direction); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", *direction, err)
		os.Exit(1)
	}
}
