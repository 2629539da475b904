package main

import (
	_ "embed"

	"github.com/kiyensi/store-settings-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
