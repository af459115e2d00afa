package router

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"me-python-boutique/app/controller"
)

type Controllers struct {
	Snake     *controller.SnakeController
	Vendor    *controller.VendorController
	Catalog   *controller.CatalogController
	Lightbox  *controller.LightboxController
	Offer     *controller.OfferController
	Assistant *controller.AssistantController
	Image     *controller.ImageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// crashResponse is sent when a handler panics
type crashResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Reload  bool   `json:"reload"`
}

// Recover turns a panic in any handler into a generic apology response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("❌ Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(crashResponse{
				Error:   "Something went wrong",
				Message: "我們無法正確顯示此頁面。這可能是因為資料格式錯誤。",
				Detail:  fmt.Sprint(rec),
				Reload:  true,
			})
		}()
		next.ServeHTTP(w, r)
	})
}

// SetupRoutes registers every endpoint on mux and returns the mux wrapped
// in the recover middleware
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) http.Handler {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog
	mux.HandleFunc("/snakes", controllers.Snake.List)
	mux.HandleFunc("/snakes/", controllers.Snake.Get)
	mux.HandleFunc("/vendors", controllers.Vendor.List)
	mux.HandleFunc("/vendors/", controllers.Vendor.Get)

	// Catalog maintenance and printable price list
	mux.HandleFunc("/catalog/refresh", controllers.Catalog.Refresh)
	mux.HandleFunc("/catalog/render", controllers.Catalog.RenderPriceList)
	mux.HandleFunc("/catalog/pdf", controllers.Catalog.DownloadPDF)

	// Image viewer sessions
	mux.HandleFunc("/lightbox/sessions", controllers.Lightbox.Sessions)
	mux.HandleFunc("/lightbox/sessions/", controllers.Lightbox.Session)

	// Buyer interactions
	mux.HandleFunc("/offers", controllers.Offer.Create)
	mux.HandleFunc("/assistant", controllers.Assistant.Ask)

	// Local thumbnails
	mux.HandleFunc("/images/", controllers.Image.GetImage)

	return Recover(mux)
}
