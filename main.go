package main

import (
	"github.com/bibliotek/catalog/internal/config"
	"github.com/bibliotek/catalog/internal/entrypoint"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg)
}
