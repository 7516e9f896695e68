package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/TWRT/garden-tasks/internal/api"
	"github.com/TWRT/garden-tasks/internal/client/airtable"
	"github.com/TWRT/garden-tasks/internal/connectivity"
	"github.com/TWRT/garden-tasks/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./garden-tasks.db"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Inicializar banco de dados
	db, err := repository.InitDB(dbPath)
	if err != nil {
		log.Fatal("Erro ao inicializar BD:", err)
	}
	defer db.Close()

	// Credenciais: o que foi salvo pela tela de configurações vence o .env
	settingsRepo := repository.NewSettingsRepository(db)
	settings, err := settingsRepo.Get()
	if err != nil {
		log.Fatal("Erro ao carregar configurações:", err)
	}
	if settings.AirtableToken == "" {
		settings.AirtableToken = os.Getenv("AIRTABLE_TOKEN")
		settings.AirtableBase = os.Getenv("AIRTABLE_BASE")
		settings.AirtableTable = os.Getenv("AIRTABLE_TABLE")
	}

	airtableClient := airtable.NewAirtableClient(
		settings.AirtableToken,
		settings.AirtableBase,
		settings.AirtableTable,
	)

	monitor := connectivity.NewMonitor(true)
	stop := make(chan struct{})
	defer close(stop)
	go monitor.Watch(airtableClient.Ping, 30*time.Second, stop)

	router := api.SetupRouter(db, airtableClient, monitor)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println("✅ Banco de dados inicializado!")
		fmt.Printf("🌱 Garden Tasks rodando em http://localhost:%s\n", port)
		fmt.Println("📝 Endpoints disponíveis:")
		fmt.Println("   GET  /tasks?view=today|upcoming|all - Listar tasks")
		fmt.Println("   POST /tasks - Criar task")
		fmt.Println("   POST /sync - Sincronizar mudanças pendentes")
		fmt.Println("   GET  /status - Conectividade e fila")
	} else {
		log.Printf("Garden Tasks listening on :%s", port)
	}

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Erro ao iniciar servidor:", err)
	}
}
