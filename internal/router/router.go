package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "academic-scheduler/internal/adapters/storage/memory"
	pg "academic-scheduler/internal/adapters/storage/postgres"
	"academic-scheduler/internal/domain/approvals"
	"academic-scheduler/internal/domain/audit"
	"academic-scheduler/internal/domain/calendar"
	"academic-scheduler/internal/domain/directory"
	"academic-scheduler/internal/domain/scheduling"
	"academic-scheduler/internal/middleware"
	"academic-scheduler/internal/platform/reslock"
	"academic-scheduler/internal/ports/auth"

	_ "academic-scheduler/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		dirRepo   directory.Repository
		eventRepo scheduling.Repository
		auditRepo audit.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		dirRepo = pg.NewDirectoryRepo(db)
		eventRepo = pg.NewEventsRepo(db)
		auditRepo = pg.NewAuditRepo(db)
	} else {
		memDir := mem.NewDirectoryRepo()
		seedDirectory(memDir)
		dirRepo = memDir
		eventRepo = mem.NewEventsRepo()
		auditRepo = mem.NewAuditRepo()
	}

	// Locks compartidos: el motor y el workflow serializan sobre el mismo Keyed.
	locks := reslockFromEnv()

	// Services por módulo
	dirSvc := directory.NewService(dirRepo)
	auditSvc := audit.NewService(auditRepo)
	schedSvc := scheduling.NewService(eventRepo, dirSvc, locks, auditSvc)
	approvalsSvc := approvals.NewService(eventRepo, locks, auditSvc)
	calendarSvc := calendar.NewService(eventRepo, dirSvc)

	// Rutas por módulo
	directory.RegisterRoutes(r, dirSvc)
	scheduling.RegisterRoutes(r, schedSvc, dirSvc)
	approvals.RegisterRoutes(r, approvalsSvc)
	calendar.RegisterRoutes(r, calendarSvc)
	audit.RegisterRoutes(r, auditSvc)

	return r
}

// seedDirectory carga un directorio mínimo para el modo dev in-memory.
// En producción el directorio vive en Postgres y lo sincroniza otro proceso.
func seedDirectory(repo *mem.DirectoryRepo) {
	repo.AddCourse(directory.Course{ID: "c-algo", Name: "Algorithms", Year: 2})
	repo.AddCourse(directory.Course{ID: "c-db", Name: "Databases", Year: 3})
	repo.AddTutor(directory.Tutor{ID: "t-ada", Name: "Ada Lovelace", CourseIDs: []string{"c-algo"}})
	repo.AddTutor(directory.Tutor{ID: "t-edgar", Name: "Edgar Codd", CourseIDs: []string{"c-db"}})
	repo.AddRoom(directory.Room{ID: "r-101", Name: "Room 101"})
	repo.AddRoom(directory.Room{ID: "r-204", Name: "Room 204"})
}

func reslockFromEnv() *reslock.Keyed {
	if v := os.Getenv("LOCK_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return reslock.New(d)
		}
	}
	return reslock.New(0)
}
