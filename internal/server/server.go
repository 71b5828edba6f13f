package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/emrgen/bookpost/internal/cache"
	"github.com/emrgen/bookpost/internal/compress"
	"github.com/emrgen/bookpost/internal/config"
	"github.com/emrgen/bookpost/internal/job"
	"github.com/emrgen/bookpost/internal/ocr"
	"github.com/emrgen/bookpost/internal/service"
	"github.com/emrgen/bookpost/internal/split"
	"github.com/emrgen/bookpost/internal/storage"
	"github.com/emrgen/bookpost/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start wires the whole service and runs the http server until SIGINT or
// SIGTERM.
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	rdb := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	postStore := store.NewGormStore(rdb)
	if err := postStore.Migrate(); err != nil {
		return err
	}

	images, err := storage.NewLocal(cnf.MediaRoot, cnf.MediaBaseURL)
	if err != nil {
		return err
	}

	ocrClient, err := NewOCRClient(cnf)
	if err != nil {
		return err
	}
	logrus.Infof("using ocr provider: %s", ocrClient.Name())

	var postCache cache.PostCache = cache.NewNop()
	if cnf.RedisAddr != "" {
		postCache = cache.NewRedisPostCache(cnf.RedisAddr, cnf.RedisPassword)
	}

	splitter := split.NewSplitter(cnf.SplitMinLength)
	codec := compress.FromName(cnf.Compression)

	posts := service.NewPostService(postStore, ocrClient, splitter, images, postCache, codec)
	ideas := service.NewIdeaService(postStore, postCache)
	underlines := service.NewUnderlineService(postStore, postCache)

	mux := NewRouter(posts, ideas, underlines, images)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(RequestTimeMiddleware(mux)),
	}

	executor := job.NewTaskExecutor([]job.CronJob{
		job.NewMediaCleaner(cnf.CleanerSchedule, postStore, images),
	})
	executor.Run()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting rest server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest server: %v", err)
			}
		}
		logrus.Infof("rest server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	executor.Stop()
	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping rest server: %v", err)
	}

	wg.Wait()

	return nil
}

// NewRouter registers the REST surface and the /media/ file server.
func NewRouter(posts *service.PostService, ideas *service.IdeaService,
	underlines *service.UnderlineService, images *storage.Local) *http.ServeMux {
	postHandler := NewPostHandler(posts)
	ideaHandler := NewIdeaHandler(ideas)
	underlineHandler := NewUnderlineHandler(underlines)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/posts/{$}", postHandler.List)
	mux.HandleFunc("POST /api/posts/upload/{$}", postHandler.Upload)
	mux.HandleFunc("GET /api/posts/{id}/{$}", postHandler.Get)
	mux.HandleFunc("PUT /api/posts/{id}/{$}", postHandler.Update)
	mux.HandleFunc("DELETE /api/posts/{id}/{$}", postHandler.Delete)
	mux.HandleFunc("GET /api/posts/{id}/export/{$}", postHandler.Export)

	mux.HandleFunc("GET /api/ideas/{$}", ideaHandler.List)
	mux.HandleFunc("POST /api/ideas/{$}", ideaHandler.Create)
	mux.HandleFunc("PUT /api/ideas/{id}/{$}", ideaHandler.Update)
	mux.HandleFunc("DELETE /api/ideas/{id}/{$}", ideaHandler.Delete)

	mux.HandleFunc("GET /api/underlines/{$}", underlineHandler.List)
	mux.HandleFunc("POST /api/underlines/{$}", underlineHandler.Create)
	mux.HandleFunc("DELETE /api/underlines/{id}/{$}", underlineHandler.Delete)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(images.Root()))))

	return mux
}

// NewOCRClient selects the extraction provider once at construction time.
func NewOCRClient(cnf *config.Config) (ocr.Client, error) {
	switch cnf.OCRProvider {
	case "tesseract":
		return ocr.NewTesseractClient(cnf.OCRLanguages...), nil
	case "openai", "":
		return ocr.NewOpenAIClient(cnf.OpenAIKey, cnf.OpenAIBaseURL, cnf.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown ocr provider: %s", cnf.OCRProvider)
	}
}
