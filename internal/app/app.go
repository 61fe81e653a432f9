package app

import (
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chakato/catalog/internal/adapters/httpserver"
	"github.com/chakato/catalog/internal/adapters/repo/postgres"
	"github.com/chakato/catalog/internal/domain"
	"github.com/chakato/catalog/internal/usecase"
	"github.com/chakato/catalog/internal/views"
)

type App struct {
	DB        *gorm.DB
	Tmpl      *template.Template
	ProductUC *usecase.ProductUC
	VariantUC *usecase.VariantUC
}

func NewApp(db *gorm.DB) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	varRepo := postgres.NewVariantRepo(db)

	app := &App{DB: db}
	app.ProductUC = usecase.NewProductUC(prodRepo, varRepo)
	app.VariantUC = &usecase.VariantUC{Variants: varRepo}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseGlob("internal/views/*.html")
	} else {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html")
	}
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.ProductUC, a.VariantUC)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Variant{}, &domain.Product{}, &domain.ProductVariant{}, &domain.ProductVariantPrice{}, &domain.ProductImage{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_product_variant_prices_price ON product_variant_prices(price)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at)").Error

	return seedVariants(a.DB)
}

// seedVariants creates the default attribute groups on an empty catalog so
// the create form has something to offer.
func seedVariants(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Variant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, title := range []string{"Size", "Color", "Style"} {
		v := domain.Variant{ID: uuid.New(), Title: title, Active: true}
		if err := db.Create(&v).Error; err != nil {
			return err
		}
	}
	return nil
}
