package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/stakewarden-io/nft-staking-engine/cmd/nft-staking-engine/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	if err := cli.Setup(); err != nil {
		panic(err)
	}
}
