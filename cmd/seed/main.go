// seed prepara una base recién migrada: crea el primer administrador si no hay ninguno
// y, opcionalmente, importa un catálogo de productos desde CSV.
//
// Uso: go run ./cmd/seed -email admin@empresa.com -password secreto123 [-csv catalogo.csv] [-latin1]
//
// El CSV lleva cabecera y columnas name,description,price,stock,category. Las categorías
// que no existan se crean; los productos ya presentes en su categoría se omiten.
// Con -latin1 el archivo se decodifica como Windows-1252 (exportaciones de Excel).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-management-api/internal/application/auth"
	"github.com/jhoicas/inventory-management-api/internal/application/dto"
	"github.com/jhoicas/inventory-management-api/internal/application/usecase"
	"github.com/jhoicas/inventory-management-api/internal/domain/entity"
	"github.com/jhoicas/inventory-management-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-management-api/pkg/config"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

func main() {
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "email del administrador inicial")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña del administrador inicial")
	csvPath := flag.String("csv", "", "catálogo de productos a importar (opcional)")
	latin1 := flag.Bool("latin1", false, "el CSV está en Windows-1252")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	}).Named("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	admins, err := userRepo.CountAdmins(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("contar administradores")
	}
	if admins > 0 {
		log.Info().Int("admins", admins).Msg("ya existe un administrador, se omite")
	} else {
		if *email == "" || *password == "" {
			log.Fatal().Msg("sin administradores: indique -email y -password")
		}
		privileges := entity.PrivilegeAdmin
		authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{})
		user, err := authUC.Signup(ctx, dto.SignupRequest{
			Email:      *email,
			Username:   strings.SplitN(*email, "@", 2)[0],
			Password:   *password,
			Privileges: &privileges,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
	}

	if *csvPath == "" {
		return
	}
	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	imp := importer{
		products:     usecase.NewProductUseCase(productRepo, categoryRepo),
		categories:   usecase.NewCategoryUseCase(categoryRepo, productRepo, postgres.NewSubInventoryRepository(pool), postgres.NewLocatorRepository(pool)),
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		categoryIDs:  map[string]string{},
	}
	created, skipped, err := imp.run(ctx, r)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("importar catálogo")
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo importado")
}

type importer struct {
	products     *usecase.ProductUseCase
	categories   *usecase.CategoryUseCase
	productRepo  *postgres.ProductRepo
	categoryRepo *postgres.CategoryRepo
	categoryIDs  map[string]string // nombre -> id
}

func (imp *importer) run(ctx context.Context, r io.Reader) (created, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if _, err := cr.Read(); err != nil {
		return 0, 0, fmt.Errorf("leer cabecera: %w", err)
	}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return created, skipped, nil
		}
		line++
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 5 {
			return created, skipped, fmt.Errorf("línea %d: se esperaban 5 columnas, hay %d", line, len(rec))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: precio %q: %w", line, rec[2], err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: stock %q: %w", line, rec[3], err)
		}
		catID, err := imp.category(ctx, strings.TrimSpace(rec[4]))
		if err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		name := strings.TrimSpace(rec[0])
		if catID != nil {
			existing, err := imp.productRepo.GetByNameAndCategory(ctx, name, *catID)
			if err != nil {
				return created, skipped, err
			}
			if existing != nil {
				skipped++
				continue
			}
		}
		if _, err := imp.products.Create(ctx, dto.CreateProductRequest{
			Name:        name,
			Description: strings.TrimSpace(rec[1]),
			Price:       price,
			Stock:       stock,
			CategoryID:  catID,
		}); err != nil {
			return created, skipped, fmt.Errorf("línea %d: %w", line, err)
		}
		created++
	}
}

// category resuelve la categoría por nombre y la crea si falta. Nombre vacío: sin categoría.
func (imp *importer) category(ctx context.Context, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := imp.categoryIDs[name]; ok {
		return &id, nil
	}
	existing, err := imp.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	var id string
	if existing != nil {
		id = existing.ID
	} else {
		cat, err := imp.categories.Create(ctx, dto.CategoryRequest{Name: name})
		if err != nil {
			return nil, err
		}
		id = cat.ID
	}
	imp.categoryIDs[name] = id
	return &id, nil
}
