package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/handlers"
	"github.com/addissalvage/elv-tracking/internal/ingest"
	"github.com/addissalvage/elv-tracking/internal/middleware"
	"github.com/addissalvage/elv-tracking/internal/reconcile"
	"github.com/addissalvage/elv-tracking/internal/rules"
)

func configureLogging() {
	log.SetFormatter(&log.JSONFormatter{})
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			log.WithField("level", lvl).Warn("unknown log level, using info")
			return
		}
		log.SetLevel(level)
	}
}

// newMux wires all HTTP routes.
func newMux(store db.Store, engine *rules.Engine, reconciler *reconcile.Reconciler, database *mongo.Database) *http.ServeMux {
	health := handlers.NewHealthHandler(database)
	vehicles := handlers.NewVehicleHandler(store)
	events := handlers.NewEventHandler(store, engine)
	parts := handlers.NewPartHandler(store)
	sync := handlers.NewSyncHandler(reconciler)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", health.Root)
	mux.HandleFunc("GET /test", health.Test)
	mux.HandleFunc("POST /api/vehicles", vehicles.Create)
	mux.HandleFunc("GET /api/vehicles", vehicles.List)
	mux.HandleFunc("GET /api/vehicles/{id}/history", vehicles.History)
	mux.HandleFunc("POST /api/events", events.Create)
	mux.HandleFunc("POST /api/parts", parts.Create)
	mux.HandleFunc("POST /api/sync", sync.Sync)
	return mux
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}
	configureLogging()

	var store db.Store
	var database *mongo.Database
	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Warn("MongoDB unavailable, falling back to in-memory store")
		store = db.NewMemoryStore()
	} else {
		name := os.Getenv("MONGO_DB")
		if name == "" {
			name = "elv"
		}
		database = client.Database(name)
		store = &db.MongoStore{DB: database}
		log.WithField("database", name).Info("connected to MongoDB")
	}

	engine := rules.NewEngine(store)
	reconciler := reconcile.NewReconciler(store, engine)
	mux := newMux(store, engine, reconciler, database)

	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		bridge := ingest.NewBridge(broker, store, engine)
		if err := bridge.Start(); err != nil {
			log.WithError(err).Warn("MQTT bridge unavailable, position ingest disabled")
		} else {
			defer bridge.Stop()
			log.WithField("broker", broker).Info("MQTT position ingest started")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	handler := middleware.RequestLogger(middleware.CORS(mux))
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
