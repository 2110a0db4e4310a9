package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/proteuswear/storefront-api/api"
	"github.com/proteuswear/storefront-api/catalog"
	"github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/store"
	"github.com/proteuswear/storefront-api/tryon"
	"github.com/proteuswear/storefront-api/utils"
)

func main() {
	config.LoadConfig()

	// Mongo backs accounts, the try-on archive and session metadata; the
	// storefront itself runs fine without it.
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Printf("MongoDB unavailable, running without persistence: %v", err)
	}

	products := catalog.NewSeeded()
	if collection := utils.Collection(api.DatabaseName, "products"); collection != nil {
		if err := products.LoadFromMongo(context.Background(), collection); err != nil {
			log.Printf("Failed to load catalog from MongoDB, using seed data: %v", err)
		}
	}

	var persister store.Persister
	if collection := utils.Collection(api.DatabaseName, "tryon_sessions"); collection != nil {
		persister = store.NewMongoPersister(collection)
	}

	h := api.New(
		store.NewCartStore(),
		store.NewSessionStore(persister),
		products,
		tryon.NewDefaultOrchestrator(),
	)

	cors := api.CORSMiddleware
	session := func(next http.HandlerFunc) http.HandlerFunc {
		return cors(api.SessionMiddleware(next))
	}

	http.HandleFunc("/products", cors(h.ProductsHandler))
	http.HandleFunc("/stores", cors(h.StoresHandler))
	http.HandleFunc("/contact", cors(h.ContactHandler))

	http.HandleFunc("/cart", session(h.CartHandler))
	http.HandleFunc("/cart/items", session(h.CartItemsHandler))
	http.HandleFunc("/try-on", session(h.VirtualTryOnHandler))
	http.HandleFunc("/try-on/result", session(h.TryOnResultHandler))
	http.HandleFunc("/try-on/history", session(h.TryOnHistoryHandler))

	http.HandleFunc("/auth/signup", cors(h.SignupHandler))
	http.HandleFunc("/auth/login", cors(h.LoginHandler))

	port := config.Port
	fmt.Printf("Storefront API starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
