package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"classcheck_backend/internals/configs"
	alunoModel "classcheck_backend/internals/features/school/alunos/model"
	chamadaModel "classcheck_backend/internals/features/school/chamadas/model"
	cursoModel "classcheck_backend/internals/features/school/cursos/model"
	evasaoModel "classcheck_backend/internals/features/school/evasoes/model"
	turmaModel "classcheck_backend/internals/features/school/turmas/model"
	unidadeModel "classcheck_backend/internals/features/school/unidades/model"
	userModel "classcheck_backend/internals/features/users/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Conectando ao PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=classcheck&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatível com PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	DB = db
	log.Println("✅ Banco conectado.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate cria/atualiza o schema e garante o catálogo de motivos de evasão.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&unidadeModel.UnidadeModel{},
		&cursoModel.CursoModel{},
		&alunoModel.AlunoModel{},
		&turmaModel.TurmaModel{},
		&chamadaModel.ChamadaModel{},
		&evasaoModel.EvasaoModel{},
		&evasaoModel.MotivoEvasaoModel{},
	); err != nil {
		return err
	}
	return evasaoModel.SeedMotivos(db)
}
