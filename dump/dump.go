// Package dump отвечает за снятие снимка хранилища
// внешней утилитой mysqldump
package dump

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CreateDump создает дамп базы данных хранилища в указанный файл
func CreateDump(cfg config.DatabaseConfig, outputFile string, logger *utils.ETLLogger) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("ошибка создания файла дампа %s: %w", outputFile, err)
	}
	defer file.Close()

	cmd := exec.Command("mysqldump",
		"--user="+cfg.User,
		"--password="+cfg.Password,
		"--host="+cfg.Host,
		"--port="+strconv.Itoa(cfg.Port),
		cfg.DBName,
	)
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ошибка выполнения mysqldump: %w", err)
	}

	logger.Info("Дамп базы данных %q сохранён в %s", cfg.DBName, outputFile)
	return nil
}
