package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env и, если есть, .env.local поверх него; флаг --port перекрывает PORT.
func Load() error {
	if err := LoadFiles(".env", ".env.local"); err != nil {
		return err
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		err := os.Setenv("PORT", portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}

// LoadFiles первый файл обязателен, последующие необязательны и перекрывают предыдущие.
// Переменные, уже заданные в окружении процесса, не трогаются первым файлом.
func LoadFiles(required string, overrides ...string) error {
	if err := godotenv.Load(required); err != nil {
		return fmt.Errorf("load %s: %w", required, err)
	}

	for _, path := range overrides {
		err := godotenv.Overload(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
