package mockapi

import (
	"github.com/go-chi/chi"

	"github.com/chemstack/chemconsole/internal/permission"
)

// RegisterRoutes mounts the API. Login is the only public route; everything
// else sits behind the auth middleware plus a per-resource permission guard.
// Production records have list, detail and create only.
func RegisterRoutes(router *chi.Mux, handler *Handler) {
	router.Post("/login", handler.Login)

	router.Group(func(pr chi.Router) {
		pr.Use(handler.AuthMiddleware)

		pr.Route("/materials", func(r chi.Router) {
			r.Use(handler.RequirePermission(permission.ResourceMaterials))
			r.Get("/", handler.ListMaterials)
			r.Post("/", handler.CreateMaterial)
			r.Get("/{id}", handler.GetMaterial)
			r.Put("/{id}", handler.UpdateMaterial)
			r.Delete("/{id}", handler.DeleteMaterial)
		})

		pr.Route("/products", func(r chi.Router) {
			r.Use(handler.RequirePermission(permission.ResourceProducts))
			r.Get("/", handler.ListProducts)
			r.Post("/", handler.CreateProduct)
			r.Get("/{id}", handler.GetProduct)
			r.Put("/{id}", handler.UpdateProduct)
			r.Delete("/{id}", handler.DeleteProduct)
		})

		pr.Route("/purchase_records", func(r chi.Router) {
			r.Use(handler.RequirePermission(permission.ResourcePurchaseRecords))
			r.Get("/", handler.ListPurchases)
			r.Post("/", handler.CreatePurchase)
			r.Get("/{id}", handler.GetPurchase)
			r.Get("/{id}/materials", handler.GetPurchaseMaterials)
			r.Delete("/{id}", handler.DeletePurchase)
		})

		pr.Route("/sale_records", func(r chi.Router) {
			r.Use(handler.RequirePermission(permission.ResourceSaleRecords))
			r.Get("/", handler.ListSales)
			r.Post("/", handler.CreateSale)
			r.Get("/{id}", handler.GetSale)
			r.Get("/{id}/products", handler.GetSaleProducts)
			r.Delete("/{id}", handler.DeleteSale)
		})

		pr.Route("/production_records", func(r chi.Router) {
			r.Use(handler.RequirePermission(permission.ResourceProductionRecords))
			r.Get("/", handler.ListProduction)
			r.Post("/", handler.CreateProduction)
			r.Get("/{id}", handler.GetProduction)
			r.Get("/{id}/materials", handler.GetProductionMaterials)
		})
	})
}
