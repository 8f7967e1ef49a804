package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	coopctrl "github.com/ruolez/EggsReserve/internal/coop/controller"
	expensectrl "github.com/ruolez/EggsReserve/internal/expense/controller"
	harvestctrl "github.com/ruolez/EggsReserve/internal/harvest/controller"
	notifyctrl "github.com/ruolez/EggsReserve/internal/notify/controller"
	orderctrl "github.com/ruolez/EggsReserve/internal/order/controller"
	productctrl "github.com/ruolez/EggsReserve/internal/product/controller"
	reportctrl "github.com/ruolez/EggsReserve/internal/report/controller"
	stockctrl "github.com/ruolez/EggsReserve/internal/stock/controller"
)

type Controllers struct {
	Stock         *stockctrl.StockController
	Orders        *orderctrl.OrderController
	Products      *productctrl.ProductsController
	Coops         *coopctrl.CoopsController
	Harvests      *harvestctrl.HarvestsController
	Expenses      *expensectrl.ExpensesController
	Reports       *reportctrl.ReportController
	EmailSettings *notifyctrl.EmailSettingsController
}

func NewRouter(c Controllers, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/stock", func(r chi.Router) {
		r.Get("/", c.Stock.Get)
		r.Put("/", c.Stock.Update)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", c.Orders.List)
		r.Post("/", c.Orders.Create)
		r.Get("/export", c.Orders.Export)
		r.Post("/import", c.Orders.Import)
		r.Get("/{orderNumber}", c.Orders.Get)
		r.Patch("/{orderNumber}", c.Orders.Update)
		r.Delete("/{orderNumber}", c.Orders.Delete)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", c.Products.List)
		r.Post("/", c.Products.Create)
		r.Put("/{id}", c.Products.Update)
		r.Delete("/{id}", c.Products.Delete)
	})

	r.Route("/api/coops", func(r chi.Router) {
		r.Get("/", c.Coops.List)
		r.Post("/", c.Coops.Create)
		r.Put("/{id}", c.Coops.Update)
		r.Delete("/{id}", c.Coops.Delete)
	})

	r.Route("/api/harvests", func(r chi.Router) {
		r.Get("/", c.Harvests.List)
		r.Post("/", c.Harvests.Create)
		r.Get("/statistics", c.Harvests.Statistics)
		r.Get("/export", c.Harvests.Export)
		r.Post("/import", c.Harvests.Import)
		r.Put("/{id}", c.Harvests.Update)
		r.Delete("/{id}", c.Harvests.Delete)
	})

	r.Route("/api/expenses", func(r chi.Router) {
		r.Get("/", c.Expenses.List)
		r.Post("/", c.Expenses.Create)
		r.Put("/{id}", c.Expenses.Update)
		r.Delete("/{id}", c.Expenses.Delete)
	})

	r.Get("/api/reports/business", c.Reports.Business)

	r.Route("/api/email-settings", func(r chi.Router) {
		r.Get("/", c.EmailSettings.Get)
		r.Put("/", c.EmailSettings.Update)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
