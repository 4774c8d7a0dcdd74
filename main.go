package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LilVoxy/coursework_dwh/config"
)

// RunOnce запускает ETL-процесс один раз и снимает дамп хранилища
func RunOnce(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteETL(); err != nil {
		log.Fatalf("Ошибка при выполнении ETL: %v", err)
	}

	if err := runner.CreateDump(); err != nil {
		log.Fatalf("Ошибка при создании дампа хранилища: %v", err)
	}
}

// RunScheduled запускает ETL-процесс по расписанию
func RunScheduled(etlConfig config.ETLConfig) {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Запускаем горутину для обработки сигналов
	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем ETL Runner...")
		cancel()
	}()

	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем планировщик
	runner.StartScheduler(ctx)
}

// RunDump снимает дамп хранилища без выполнения ETL
func RunDump(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.CreateDump(); err != nil {
		log.Fatalf("Ошибка при создании дампа хранилища: %v", err)
	}
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once, scheduled или dump")
	configPtr := flag.String("config", "", "Путь к YAML-файлу конфигурации (необязательно)")

	flag.Parse()

	// Загружаем конфигурацию: файл (если указан) поверх значений
	// по умолчанию, переменные окружения поверх файла
	var etlConfig config.ETLConfig
	if *configPtr != "" {
		var err error
		etlConfig, err = config.LoadConfigFile(*configPtr)
		if err != nil {
			log.Fatalf("Ошибка загрузки конфигурации: %v", err)
		}
	} else {
		etlConfig = config.GetConfig()
	}

	log.Println("Запуск ETL Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce(etlConfig)
	case "scheduled":
		RunScheduled(etlConfig)
	case "dump":
		RunDump(etlConfig)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled, dump")
		os.Exit(1)
	}

	log.Println("ETL Runner завершил работу")
}
