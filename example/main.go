// FILE: lixenwraith/deconfig/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/deconfig"
)

// AppConfig is filled by Container.Scan.
type AppConfig struct {
	Server struct {
		Host string `deconfig:"host"`
		Port int    `deconfig:"port" validate:"gt=0,lt=65536"`
	} `deconfig:"server"`
	Timeout time.Duration `deconfig:"timeout"`
	Tags    []string      `deconfig:"tags,optional"`
}

func main() {
	dir, err := os.MkdirTemp("", "deconfig-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "example.toml")
	if err := os.WriteFile(configPath, []byte("[server]\nhost = \"0.0.0.0\"\nport = 8080\n"), 0644); err != nil {
		log.Fatal(err)
	}

	// Environment first, then the file, then struct defaults.
	if err := deconfig.SetDefaultAdapters(
		deconfig.NewEnvAdapter("EXAMPLE_"),
		deconfig.NewFileAdapter(configPath),
	); err != nil {
		log.Fatal(err)
	}
	deconfig.DefaultRegistry().Seal()

	defaults := AppConfig{Timeout: 30 * time.Second}
	defaults.Server.Host = "localhost"
	defaults.Server.Port = 80

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := deconfig.MustNew(deconfig.NewBuilder("example").WithStruct(&defaults).WithLogger(logger))

	if err := cfg.Check(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var app AppConfig
	if err := cfg.Scan(&app); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("listening on %s:%d (timeout %s)\n", app.Server.Host, app.Server.Port, app.Timeout)

	// Values are resolved on every access.
	os.Setenv("EXAMPLE_SERVER_PORT", "9090")
	defer os.Unsetenv("EXAMPLE_SERVER_PORT")
	port, _ := deconfig.Get[int](cfg, "server.port")
	fmt.Printf("port after env change: %d\n", port)

	os.Setenv("EXAMPLE_SERVER_PORT", "70000")
	if _, err := cfg.Value("server.port"); err != nil {
		var vErr *deconfig.ValidationError
		if errors.As(err, &vErr) {
			fmt.Printf("rejected %v for %s\n", vErr.Value, vErr.Field)
		}
	}

	fmt.Print(cfg.Debug())
}
